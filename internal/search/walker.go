package search

import (
	"fmt"
	"math"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// window is the (alpha, beta) pruning window. It is always passed by value.
type window struct {
	alpha, beta float64
}

func fullWindow() window {
	return window{alpha: math.Inf(-1), beta: math.Inf(1)}
}

// node folds the values of one expanded node's children into its value.
type node interface {
	// window is the window to hand to the next child
	window() window
	// add records a child value and reports whether the remaining
	// children can be skipped
	add(v float64) bool
	value() float64
}

// rule decides how children combine at a given agent's turn
type rule interface {
	open(agentIndex int, w window) node
}

// walker runs one depth-limited traversal. A new walker is made for every
// search, so nothing is shared between calls.
type walker[S State[S]] struct {
	maxDepth int
	evaluate Evaluator[S]
	rule     rule
	stats    Stats
}

func (w *walker[S]) isLeaf(depth int, state S) bool {
	return state.IsWin() || state.IsLose() || depth >= w.maxDepth
}

func (w *walker[S]) leaf(state S) float64 {
	w.stats.LeafEvaluations++
	return w.evaluate(state)
}

// nextTurn moves to the next agent; depth counts completed rounds.
func nextTurn(agentIndex, depth, numAgents int) (int, int) {
	next := (agentIndex + 1) % numAgents
	if next == MaxAgent {
		depth++
	}
	return next, depth
}

func (w *walker[S]) value(agentIndex, depth int, state S, win window) (float64, error) {
	if w.isLeaf(depth, state) {
		return w.leaf(state), nil
	}
	actions := state.LegalActions(agentIndex)
	if len(actions) == 0 {
		return w.leaf(state), nil
	}

	w.stats.NodesExpanded++
	nextAgent, nextDepth := nextTurn(agentIndex, depth, state.NumAgents())
	n := w.rule.open(agentIndex, win)
	for i, action := range actions {
		child, err := state.Successor(agentIndex, action)
		if err != nil {
			return 0, fmt.Errorf("expanding agent %d at depth %d: %w", agentIndex, depth, err)
		}
		v, err := w.value(nextAgent, nextDepth, child, n.window())
		if err != nil {
			return 0, err
		}
		if n.add(v) {
			if i < len(actions)-1 {
				w.stats.Cutoffs++
			}
			break
		}
	}
	return n.value(), nil
}

// root expands the maximizing agent at depth 0 and keeps the first action
// reaching the greatest value.
func (w *walker[S]) root(state S) (core.Action, float64, error) {
	actions := state.LegalActions(MaxAgent)
	if len(actions) == 0 {
		return core.Stop, 0, ErrNoLegalMoves
	}

	w.stats.NodesExpanded++
	nextAgent, nextDepth := nextTurn(MaxAgent, 0, state.NumAgents())
	n := w.rule.open(MaxAgent, fullWindow())
	best, bestValue := actions[0], math.Inf(-1)
	for i, action := range actions {
		child, err := state.Successor(MaxAgent, action)
		if err != nil {
			return core.Stop, 0, fmt.Errorf("expanding root: %w", err)
		}
		v, err := w.value(nextAgent, nextDepth, child, n.window())
		if err != nil {
			return core.Stop, 0, err
		}
		if i == 0 || v > bestValue {
			best, bestValue = action, v
		}
		n.add(v)
	}
	return best, bestValue, nil
}
