package heuristics

import (
	"math"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
)

// ReflexConfig holds the weights of the single-ply action evaluator
type ReflexConfig struct {
	FoodBonus          float64 // Added when the move lands on food
	GhostPenalty       float64 // Divided by the distance of each close ghost
	GhostRadius        int     // Ghosts closer than this are penalized
	CollisionPenalty   float64 // Ghost on Pacman's cell
	FoodDistanceWeight float64
}

// DefaultReflexConfig returns the default reflex weights
func DefaultReflexConfig() *ReflexConfig {
	return &ReflexConfig{
		FoodBonus:          50,
		GhostPenalty:       200,
		GhostRadius:        2,
		CollisionPenalty:   1e6,
		FoodDistanceWeight: 1.5,
	}
}

// Reflex returns an action evaluator for ReflexPolicy. It looks only at the
// state right after Pacman's move; ghosts have not answered yet.
func Reflex(config *ReflexConfig) search.ActionEvaluator[*game.State] {
	if config == nil {
		config = DefaultReflexConfig()
	}
	return func(state *game.State, action core.Action) float64 {
		return ReflexWithConfig(state, action, config)
	}
}

// ReflexWithConfig scores taking action from state. Stop and illegal
// actions score negative infinity so they are only picked when nothing
// else is available.
func ReflexWithConfig(state *game.State, action core.Action, config *ReflexConfig) float64 {
	if action == core.Stop {
		return math.Inf(-1)
	}
	next, err := state.Successor(game.PacmanIndex, action)
	if err != nil {
		return math.Inf(-1)
	}

	pos := next.PacmanPosition()
	value := float64(next.Score())

	if state.HasFood(pos) {
		value += config.FoodBonus
	}

	for _, ghost := range next.GhostPositions() {
		d := pos.DistanceTo(ghost)
		switch {
		case d == 0:
			value -= config.CollisionPenalty
		case d < config.GhostRadius:
			value -= config.GhostPenalty / float64(d)
		}
	}

	nearest, ok := nearestDistance(pos, next.FoodList())
	if !ok {
		nearest = 1
	}
	value -= config.FoodDistanceWeight * float64(nearest)

	return value
}
