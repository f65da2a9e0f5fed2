// Package search chooses the maximizing agent's move by exploring a
// depth-limited game tree in which every agent takes turns in index order.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// Algorithm names a move-selection policy
type Algorithm string

const (
	Minimax    Algorithm = "minimax"
	AlphaBeta  Algorithm = "alphabeta"
	Expectimax Algorithm = "expectimax"
	Reflex     Algorithm = "reflex"
)

var algorithmAliases = map[string]Algorithm{
	"minimax":         Minimax,
	"minimaxagent":    Minimax,
	"alphabeta":       AlphaBeta,
	"alpha-beta":      AlphaBeta,
	"alphabetaagent":  AlphaBeta,
	"expectimax":      Expectimax,
	"expectimaxagent": Expectimax,
	"reflex":          Reflex,
	"reflexagent":     Reflex,
}

// ParseAlgorithm resolves a case-insensitive algorithm or agent name
func ParseAlgorithm(name string) (Algorithm, error) {
	if alg, ok := algorithmAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return alg, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNotImplemented, name)
}

// Policy picks the maximizing agent's action for a state
type Policy[S any] interface {
	ChooseAction(state S) (core.Action, error)
}

// Result is the outcome of one tree search
type Result struct {
	Action core.Action
	Value  float64
	Stats  Stats
}

type options struct {
	logger zerolog.Logger
	rng    *rand.Rand
}

// Option configures a policy at construction time
type Option func(*options)

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRand sets the tie-break source of single-ply policies
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

func buildOptions(opts []Option) options {
	o := options{logger: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return o
}

// TreePolicy is a depth-limited tree search. Minimax, alpha-beta and
// expectimax differ only in how a node combines its children's values.
type TreePolicy[S State[S]] struct {
	algorithm Algorithm
	depth     int
	evaluate  Evaluator[S]
	rule      rule
	logger    zerolog.Logger
}

// New builds the tree policy for alg. depth counts full rounds of agent
// turns; depth <= 0 evaluates the root directly.
func New[S State[S]](alg Algorithm, depth int, evaluate Evaluator[S], opts ...Option) (*TreePolicy[S], error) {
	if evaluate == nil {
		return nil, fmt.Errorf("%s policy needs an evaluator", alg)
	}

	var r rule
	switch alg {
	case Minimax:
		r = adversarialRule{}
	case AlphaBeta:
		r = adversarialRule{prune: true}
	case Expectimax:
		r = expectimaxRule{}
	case Reflex:
		return nil, fmt.Errorf("reflex is a single-ply policy, use NewReflex")
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotImplemented, alg)
	}

	o := buildOptions(opts)
	return &TreePolicy[S]{
		algorithm: alg,
		depth:     depth,
		evaluate:  evaluate,
		rule:      r,
		logger: o.logger.With().
			Str("component", "search").
			Str("algorithm", string(alg)).
			Int("depth", depth).
			Logger(),
	}, nil
}

func NewMinimax[S State[S]](depth int, evaluate Evaluator[S], opts ...Option) (*TreePolicy[S], error) {
	return New(Minimax, depth, evaluate, opts...)
}

func NewAlphaBeta[S State[S]](depth int, evaluate Evaluator[S], opts ...Option) (*TreePolicy[S], error) {
	return New(AlphaBeta, depth, evaluate, opts...)
}

func NewExpectimax[S State[S]](depth int, evaluate Evaluator[S], opts ...Option) (*TreePolicy[S], error) {
	return New(Expectimax, depth, evaluate, opts...)
}

func (p *TreePolicy[S]) Algorithm() Algorithm { return p.algorithm }
func (p *TreePolicy[S]) Depth() int           { return p.depth }

// Search explores the tree below state. A terminal root, or depth <= 0,
// is evaluated directly and reported with the Stop action.
func (p *TreePolicy[S]) Search(state S) (Result, error) {
	start := time.Now()
	w := &walker[S]{maxDepth: p.depth, evaluate: p.evaluate, rule: p.rule}

	var res Result
	if w.isLeaf(0, state) {
		res = Result{Action: core.Stop, Value: w.leaf(state)}
	} else {
		action, value, err := w.root(state)
		if err != nil {
			return Result{}, err
		}
		res = Result{Action: action, Value: value}
	}
	res.Stats = w.stats
	res.Stats.Duration = time.Since(start)

	p.logger.Debug().
		Str("action", res.Action.String()).
		Float64("value", res.Value).
		Int("leaf_evaluations", res.Stats.LeafEvaluations).
		Int("nodes_expanded", res.Stats.NodesExpanded).
		Int("cutoffs", res.Stats.Cutoffs).
		Dur("duration", res.Stats.Duration).
		Msg("Search complete")

	return res, nil
}

// ChooseAction returns the action Search settles on
func (p *TreePolicy[S]) ChooseAction(state S) (core.Action, error) {
	res, err := p.Search(state)
	return res.Action, err
}
