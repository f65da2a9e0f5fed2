package search

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// adversarialRule maximizes at MaxAgent and minimizes everywhere else.
// With prune set, nodes stop early once the window proves the rest of
// their children irrelevant.
type adversarialRule struct {
	prune bool
}

func (r adversarialRule) open(agentIndex int, w window) node {
	if agentIndex == MaxAgent {
		return &maxNode{best: math.Inf(-1), win: w, prune: r.prune}
	}
	return &minNode{best: math.Inf(1), win: w, prune: r.prune}
}

// expectimaxRule maximizes at MaxAgent and averages everywhere else.
type expectimaxRule struct{}

func (expectimaxRule) open(agentIndex int, w window) node {
	if agentIndex == MaxAgent {
		return &maxNode{best: math.Inf(-1), win: w}
	}
	return &chanceNode{win: w}
}

type maxNode struct {
	best  float64
	win   window
	prune bool
}

func (n *maxNode) window() window { return n.win }
func (n *maxNode) value() float64 { return n.best }

func (n *maxNode) add(v float64) bool {
	n.best = math.Max(n.best, v)
	if !n.prune {
		return false
	}
	// Strict comparison keeps the pruned result identical to plain minimax
	if n.best > n.win.beta {
		return true
	}
	n.win.alpha = math.Max(n.win.alpha, n.best)
	return false
}

type minNode struct {
	best  float64
	win   window
	prune bool
}

func (n *minNode) window() window { return n.win }
func (n *minNode) value() float64 { return n.best }

func (n *minNode) add(v float64) bool {
	n.best = math.Min(n.best, v)
	if !n.prune {
		return false
	}
	if n.best < n.win.alpha {
		return true
	}
	n.win.beta = math.Min(n.win.beta, n.best)
	return false
}

// chanceNode models an agent picking uniformly among its legal actions.
// It is only opened for nodes with at least one child.
type chanceNode struct {
	values []float64
	win    window
}

func (n *chanceNode) window() window { return n.win }
func (n *chanceNode) value() float64 { return stat.Mean(n.values, nil) }

func (n *chanceNode) add(v float64) bool {
	n.values = append(n.values, v)
	return false
}
