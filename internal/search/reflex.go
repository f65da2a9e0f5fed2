package search

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// ReflexPolicy scores each of the maximizing agent's legal actions once and
// picks one of the best at random. Unlike TreePolicy it never recurses.
type ReflexPolicy[S State[S]] struct {
	evaluate ActionEvaluator[S]
	rng      *rand.Rand
	logger   zerolog.Logger
}

func NewReflex[S State[S]](evaluate ActionEvaluator[S], opts ...Option) (*ReflexPolicy[S], error) {
	if evaluate == nil {
		return nil, fmt.Errorf("reflex policy needs an action evaluator")
	}
	o := buildOptions(opts)
	return &ReflexPolicy[S]{
		evaluate: evaluate,
		rng:      o.rng,
		logger:   o.logger.With().Str("component", "search").Str("algorithm", string(Reflex)).Logger(),
	}, nil
}

func (p *ReflexPolicy[S]) ChooseAction(state S) (core.Action, error) {
	actions := state.LegalActions(MaxAgent)
	if len(actions) == 0 {
		return core.Stop, ErrNoLegalMoves
	}

	best := math.Inf(-1)
	scores := make([]float64, len(actions))
	for i, action := range actions {
		scores[i] = p.evaluate(state, action)
		best = math.Max(best, scores[i])
	}

	var bestIndices []int
	for i, score := range scores {
		if score == best {
			bestIndices = append(bestIndices, i)
		}
	}
	if len(bestIndices) == 0 {
		// Every score was NaN
		bestIndices = append(bestIndices, 0)
	}
	chosen := actions[bestIndices[p.rng.Intn(len(bestIndices))]]

	p.logger.Debug().
		Str("action", chosen.String()).
		Float64("value", best).
		Int("tied", len(bestIndices)).
		Msg("Reflex choice")

	return chosen, nil
}
