package agents

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// Ghost agent kinds
const (
	KindRandom      = "random"
	KindDirectional = "directional"
)

var ghostKinds = map[string]string{
	KindRandom:         KindRandom,
	"randomghost":      KindRandom,
	KindDirectional:    KindDirectional,
	"directionalghost": KindDirectional,
}

// ParseGhostKind resolves a case-insensitive ghost name, e.g.
// "DirectionalGhost", to its kind.
func ParseGhostKind(name string) (string, error) {
	if kind, ok := ghostKinds[strings.ToLower(strings.TrimSpace(name))]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAgent, name)
}

var (
	// ErrUnknownAgent is returned for agent names nothing is registered under
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrStuck is returned when a ghost is asked to move with no legal actions
	ErrStuck = errors.New("agent has no legal actions")
)

// RandomGhost picks uniformly among its legal actions.
type RandomGhost struct {
	index int
	rng   *rand.Rand
}

func NewRandomGhost(index int, rng *rand.Rand) *RandomGhost {
	return &RandomGhost{index: index, rng: rng}
}

func (g *RandomGhost) ChooseAction(state *game.State) (core.Action, error) {
	actions := state.LegalActions(g.index)
	if len(actions) == 0 {
		return core.Stop, fmt.Errorf("ghost %d: %w", g.index, ErrStuck)
	}
	return actions[g.rng.Intn(len(actions))], nil
}

// DirectionalGhost heads for Pacman, or away from Pacman while scared. With
// probability Attack (Flee when scared) it picks among the moves that best
// close (or open) the distance; otherwise it moves uniformly at random.
type DirectionalGhost struct {
	index  int
	rng    *rand.Rand
	Attack float64
	Flee   float64
}

func NewDirectionalGhost(index int, rng *rand.Rand) *DirectionalGhost {
	return &DirectionalGhost{index: index, rng: rng, Attack: 0.8, Flee: 0.8}
}

// Distribution returns the probability of each legal action, in legal
// action order.
func (g *DirectionalGhost) Distribution(state *game.State) ([]core.Action, []float64, error) {
	actions := state.LegalActions(g.index)
	if len(actions) == 0 {
		return nil, nil, fmt.Errorf("ghost %d: %w", g.index, ErrStuck)
	}
	ghost, err := state.AgentState(g.index)
	if err != nil {
		return nil, nil, err
	}

	pacman := state.PacmanPosition()
	distances := make([]int, len(actions))
	for i, a := range actions {
		distances[i] = ghost.Position.Move(a).DistanceTo(pacman)
	}

	bestProb := g.Attack
	better := func(d, best int) bool { return d < best }
	if ghost.IsScared() {
		bestProb = g.Flee
		better = func(d, best int) bool { return d > best }
	}

	best := distances[0]
	for _, d := range distances[1:] {
		if better(d, best) {
			best = d
		}
	}
	var numBest int
	for _, d := range distances {
		if d == best {
			numBest++
		}
	}

	probs := make([]float64, len(actions))
	for i, d := range distances {
		probs[i] = (1 - bestProb) / float64(len(actions))
		if d == best {
			probs[i] += bestProb / float64(numBest)
		}
	}
	return actions, probs, nil
}

func (g *DirectionalGhost) ChooseAction(state *game.State) (core.Action, error) {
	actions, probs, err := g.Distribution(state)
	if err != nil {
		return core.Stop, err
	}

	r := g.rng.Float64()
	for i, p := range probs {
		if r < p {
			return actions[i], nil
		}
		r -= p
	}
	return actions[len(actions)-1], nil
}

// NewGhost builds the ghost agent of the given kind for agent index
func NewGhost(kind string, index int, rng *rand.Rand) (game.Agent, error) {
	if index <= game.PacmanIndex {
		return nil, fmt.Errorf("ghost index %d: %w", index, core.ErrInvalidAgent)
	}
	k, err := ParseGhostKind(kind)
	if err != nil {
		return nil, err
	}
	if k == KindDirectional {
		return NewDirectionalGhost(index, rng), nil
	}
	return NewRandomGhost(index, rng), nil
}

// NewGhosts builds one ghost of the given kind for every ghost in the layout.
// Each ghost gets its own generator seeded from rng.
func NewGhosts(kind string, numGhosts int, rng *rand.Rand) ([]game.Agent, error) {
	ghosts := make([]game.Agent, 0, numGhosts)
	for i := 1; i <= numGhosts; i++ {
		g, err := NewGhost(kind, i, rand.New(rand.NewSource(rng.Uint64())))
		if err != nil {
			return nil, err
		}
		ghosts = append(ghosts, g)
	}
	return ghosts, nil
}
