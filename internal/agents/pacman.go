// Package agents builds the agents that play a game, selected by name.
package agents

import (
	"fmt"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/heuristics"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
)

// PacmanConfig selects Pacman's policy
type PacmanConfig struct {
	Algorithm string // any name search.ParseAlgorithm accepts
	Depth     int
	Evaluator string // leaf evaluator name, ignored by reflex
	Reflex    *heuristics.ReflexConfig
	Better    *heuristics.BetterConfig
}

// DefaultPacmanConfig returns a depth 2 minimax Pacman scoring leaves by score
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Algorithm: string(search.Minimax),
		Depth:     2,
		Evaluator: "score",
		Reflex:    heuristics.DefaultReflexConfig(),
		Better:    heuristics.DefaultBetterConfig(),
	}
}

// NewPacman builds the Pacman agent named by name, e.g. "AlphaBetaAgent".
func NewPacman(name string, depth int, evalName string, opts ...search.Option) (game.Agent, error) {
	cfg := DefaultPacmanConfig()
	cfg.Algorithm = name
	cfg.Depth = depth
	cfg.Evaluator = evalName
	return NewPacmanWithConfig(cfg, opts...)
}

// NewPacmanWithConfig resolves the algorithm and evaluator once, so a bad
// name fails here rather than in the middle of a game.
func NewPacmanWithConfig(cfg PacmanConfig, opts ...search.Option) (game.Agent, error) {
	alg, err := search.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("pacman agent: %w", err)
	}

	if alg == search.Reflex {
		policy, err := search.NewReflex(heuristics.Reflex(cfg.Reflex), opts...)
		if err != nil {
			return nil, fmt.Errorf("pacman agent: %w", err)
		}
		return policy, nil
	}

	eval, err := heuristics.LookupWithConfig(cfg.Evaluator, cfg.Better)
	if err != nil {
		return nil, fmt.Errorf("pacman agent: %w", err)
	}
	policy, err := search.New(alg, cfg.Depth, eval, opts...)
	if err != nil {
		return nil, fmt.Errorf("pacman agent: %w", err)
	}
	return policy, nil
}
