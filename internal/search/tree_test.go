package search

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

var errBrokenTree = errors.New("broken tree")

// treeState is a hand-built game tree. Child i is reached by core.Actions[i],
// so a node has at most five children.
type treeState struct {
	agents   int
	value    float64
	children []*treeState
	win      bool
	lose     bool
	broken   bool
}

func (t *treeState) LegalActions(agentIndex int) []core.Action {
	return core.Actions[:len(t.children)]
}

func (t *treeState) Successor(agentIndex int, action core.Action) (*treeState, error) {
	if t.broken {
		return nil, errBrokenTree
	}
	if int(action) < 0 || int(action) >= len(t.children) {
		return nil, fmt.Errorf("action %s: %w", action, core.ErrIllegalAction)
	}
	return t.children[action], nil
}

func (t *treeState) NumAgents() int { return t.agents }
func (t *treeState) IsWin() bool    { return t.win }
func (t *treeState) IsLose() bool   { return t.lose }

func leaf(v float64) *treeState { return &treeState{value: v} }

func branch(children ...*treeState) *treeState {
	return &treeState{children: children}
}

// withValue sets the static value of an inner node
func withValue(v float64, t *treeState) *treeState {
	t.value = v
	return t
}

// tree fixes the agent count on every node of the tree
func tree(agents int, root *treeState) *treeState {
	root.agents = agents
	for _, c := range root.children {
		tree(agents, c)
	}
	return root
}

func treeValue(t *treeState) float64 { return t.value }

// countingEvaluator wraps treeValue and counts its calls
func countingEvaluator(calls *int) Evaluator[*treeState] {
	return func(t *treeState) float64 {
		*calls++
		return t.value
	}
}

// randomTree builds a complete tree of the given plies with random leaf
// values. Inner nodes carry a static value one below the backed-up minimax
// value of their children's static values, which keeps the evaluator
// consistent: looking deeper never makes it look worse.
func randomTree(rng *rand.Rand, agents, plies int) *treeState {
	var build func(ply int) *treeState
	build = func(ply int) *treeState {
		if ply == plies {
			return leaf(float64(rng.Intn(41) - 20))
		}
		n := branch()
		for i := 0; i < 2+rng.Intn(3); i++ {
			n.children = append(n.children, build(ply+1))
		}
		best := n.children[0].value
		for _, c := range n.children[1:] {
			if ply%agents == MaxAgent && c.value > best {
				best = c.value
			}
			if ply%agents != MaxAgent && c.value < best {
				best = c.value
			}
		}
		n.value = best - 1
		return n
	}
	return tree(agents, build(0))
}
