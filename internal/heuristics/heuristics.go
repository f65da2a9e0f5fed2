// Package heuristics holds the leaf evaluators used by the Pacman search
// policies. Every evaluator scores a state from Pacman's point of view.
package heuristics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
)

// ErrUnknownEvaluator is returned by Lookup for names it cannot resolve
var ErrUnknownEvaluator = errors.New("unknown evaluation function")

// Score is the default leaf evaluator: the game score itself.
func Score(state *game.State) float64 {
	return float64(state.Score())
}

// Lookup resolves an evaluator by name. Both the short names and the long
// function names are accepted, case-insensitively.
func Lookup(name string) (search.Evaluator[*game.State], error) {
	return LookupWithConfig(name, DefaultBetterConfig())
}

// LookupWithConfig is Lookup with custom weights for the better evaluator
func LookupWithConfig(name string, better *BetterConfig) (search.Evaluator[*game.State], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "score", "scoreevaluationfunction":
		return Score, nil
	case "better", "betterevaluationfunction":
		return Better(better), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
}

// nearestDistance returns the Manhattan distance from pos to the closest of
// targets, and false when there are none.
func nearestDistance(pos core.Coordinate, targets []core.Coordinate) (int, bool) {
	best := math.MaxInt
	for _, t := range targets {
		if d := pos.DistanceTo(t); d < best {
			best = d
		}
	}
	return best, len(targets) > 0
}
