package search

import "github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"

// MaxAgent is the index of the single maximizing agent. Every other index
// is a minimizing (or chance) agent.
const MaxAgent = 0

// State is what the search needs from a game position. S is the concrete
// state type, so successors come back without type assertions.
// Implementations must not mutate a state once it has been handed out.
type State[S any] interface {
	LegalActions(agentIndex int) []core.Action
	Successor(agentIndex int, action core.Action) (S, error)
	NumAgents() int
	IsWin() bool
	IsLose() bool
}

// Evaluator scores a state from the maximizing agent's point of view
type Evaluator[S any] func(state S) float64

// ActionEvaluator scores taking action from state, for single-ply policies
type ActionEvaluator[S any] func(state S, action core.Action) float64
