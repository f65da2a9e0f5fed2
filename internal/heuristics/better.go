package heuristics

import (
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
)

// BetterConfig holds the weights of the state evaluator used at search leaves
type BetterConfig struct {
	FoodCountWeight    float64 // Per remaining food pellet
	FoodDistanceWeight float64 // Per step to the nearest pellet
	CapsuleWeight      float64 // Per remaining capsule
	GhostRadius        int     // Active ghosts closer than this are a threat
	GhostPenalty       float64
	ScaredGhostWeight  float64 // Reward for a scared ghost Pacman can still catch
}

// DefaultBetterConfig returns the default leaf evaluation weights
func DefaultBetterConfig() *BetterConfig {
	return &BetterConfig{
		FoodCountWeight:    4,
		FoodDistanceWeight: 1.5,
		CapsuleWeight:      20,
		GhostRadius:        3,
		GhostPenalty:       200,
		ScaredGhostWeight:  200,
	}
}

// Better returns a state evaluator built on config
func Better(config *BetterConfig) search.Evaluator[*game.State] {
	if config == nil {
		config = DefaultBetterConfig()
	}
	return func(state *game.State) float64 {
		return BetterWithConfig(state, config)
	}
}

// BetterWithConfig evaluates state. It starts from the score, charges for
// food and capsules still on the board, and adds a ghost term: close active
// ghosts cost points, scared ghosts that can be reached in time earn them.
func BetterWithConfig(state *game.State, config *BetterConfig) float64 {
	value := float64(state.Score())
	pos := state.PacmanPosition()

	value -= config.FoodCountWeight * float64(state.NumFood())
	if nearest, ok := nearestDistance(pos, state.FoodList()); ok {
		value -= config.FoodDistanceWeight * float64(nearest)
	}
	value -= config.CapsuleWeight * float64(len(state.Capsules()))

	for _, ghost := range state.GhostStates() {
		d := pos.DistanceTo(ghost.Position)
		if ghost.IsScared() {
			if d < ghost.ScaredTimer {
				value += config.ScaredGhostWeight / float64(d+1)
			}
			continue
		}
		if d < config.GhostRadius {
			value -= config.GhostPenalty / float64(d+1)
		}
	}

	return value
}
