package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/heuristics"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/search"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/testutil"
)

func newState(t *testing.T, text string) *game.State {
	t.Helper()
	l, err := game.ParseLayout(text)
	require.NoError(t, err)
	return game.NewState(l, game.DefaultRules())
}

func TestNewPacman_ByName(t *testing.T) {
	tests := []struct {
		name     string
		expected search.Algorithm
	}{
		{"MinimaxAgent", search.Minimax},
		{"alphabeta", search.AlphaBeta},
		{"ExpectimaxAgent", search.Expectimax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := NewPacman(tt.name, 3, "better", search.WithLogger(testutil.NopLogger()))
			require.NoError(t, err)

			policy, ok := agent.(*search.TreePolicy[*game.State])
			require.True(t, ok)
			assert.Equal(t, tt.expected, policy.Algorithm())
			assert.Equal(t, 3, policy.Depth())
		})
	}

	agent, err := NewPacman("ReflexAgent", 0, "", search.WithLogger(testutil.NopLogger()))
	require.NoError(t, err)
	assert.IsType(t, &search.ReflexPolicy[*game.State]{}, agent)
}

func TestNewPacman_Errors(t *testing.T) {
	_, err := NewPacman("MonteCarloAgent", 2, "score")
	assert.ErrorIs(t, err, search.ErrNotImplemented)

	_, err = NewPacman("minimax", 2, "cleverest")
	assert.ErrorIs(t, err, heuristics.ErrUnknownEvaluator)
}

func TestNewPacman_PlaysOpenGrid(t *testing.T) {
	s := newState(t, testutil.OpenGrid5x5)

	agent, err := NewPacman("AlphaBetaAgent", 2, "scoreEvaluationFunction", search.WithLogger(testutil.NopLogger()))
	require.NoError(t, err)

	action, err := agent.ChooseAction(s)
	require.NoError(t, err)
	assert.Equal(t, core.North, action)
}

func TestRandomGhost(t *testing.T) {
	s := newState(t, testutil.OpenGrid5x5)
	g := NewRandomGhost(1, testutil.NewTestRNG(5))

	seen := make(map[core.Action]int)
	for i := 0; i < 200; i++ {
		action, err := g.ChooseAction(s)
		require.NoError(t, err)
		seen[action]++
	}

	assert.Len(t, seen, 3)
	for _, a := range []core.Action{core.North, core.East, core.West} {
		assert.Positive(t, seen[a], a)
	}
}

func TestGhosts_Stuck(t *testing.T) {
	s := newState(t, "%%%%%\n%P%G%\n%%%%%")

	_, err := NewRandomGhost(1, testutil.NewTestRNG(1)).ChooseAction(s)
	assert.ErrorIs(t, err, ErrStuck)

	_, err = NewDirectionalGhost(1, testutil.NewTestRNG(1)).ChooseAction(s)
	assert.ErrorIs(t, err, ErrStuck)
}

func TestDirectionalGhost_Distribution(t *testing.T) {
	s := newState(t, testutil.OpenGrid5x5)
	g := NewDirectionalGhost(1, testutil.NewTestRNG(9))

	actions, probs, err := g.Distribution(s)
	require.NoError(t, err)
	require.Equal(t, []core.Action{core.North, core.East, core.West}, actions)

	assert.InDelta(t, 0.8+0.2/3, probs[0], 1e-9)
	assert.InDelta(t, 0.2/3, probs[1], 1e-9)
	assert.InDelta(t, 0.2/3, probs[2], 1e-9)
	assert.InDelta(t, 1.0, probs[0]+probs[1]+probs[2], 1e-9)
}

func TestDirectionalGhost_FleesWhenScared(t *testing.T) {
	s := newState(t, testutil.CapsuleTrap)
	for i := 0; i < 2; i++ {
		var err error
		s, err = s.Successor(game.PacmanIndex, core.East)
		require.NoError(t, err)
	}
	ghost, err := s.AgentState(1)
	require.NoError(t, err)
	require.True(t, ghost.IsScared())

	g := NewDirectionalGhost(1, testutil.NewTestRNG(9))
	actions, probs, err := g.Distribution(s)
	require.NoError(t, err)
	require.Equal(t, []core.Action{core.East, core.West}, actions)
	assert.InDelta(t, 0.9, probs[0], 1e-9)
	assert.InDelta(t, 0.1, probs[1], 1e-9)
}

func TestDirectionalGhost_MostlyChases(t *testing.T) {
	s := newState(t, testutil.OpenGrid5x5)
	g := NewDirectionalGhost(1, testutil.NewTestRNG(21))

	north := 0
	const draws = 2000
	for i := 0; i < draws; i++ {
		action, err := g.ChooseAction(s)
		require.NoError(t, err)
		if action == core.North {
			north++
		}
	}
	assert.Greater(t, float64(north)/draws, 0.75)
}

func TestNewGhost(t *testing.T) {
	rng := testutil.NewTestRNG(1)

	g, err := NewGhost("random", 1, rng)
	require.NoError(t, err)
	assert.IsType(t, &RandomGhost{}, g)

	g, err = NewGhost("DirectionalGhost", 2, rng)
	require.NoError(t, err)
	assert.IsType(t, &DirectionalGhost{}, g)

	_, err = NewGhost("random", 0, rng)
	assert.ErrorIs(t, err, core.ErrInvalidAgent)

	_, err = NewGhost("clyde", 1, rng)
	assert.ErrorIs(t, err, ErrUnknownAgent)
}

func TestParseGhostKind(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"random", KindRandom},
		{"RandomGhost", KindRandom},
		{" directional ", KindDirectional},
		{"DirectionalGhost", KindDirectional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseGhostKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}

	_, err := ParseGhostKind("pinky")
	assert.ErrorIs(t, err, ErrUnknownAgent)
}

func TestNewGhosts(t *testing.T) {
	ghosts, err := NewGhosts(KindDirectional, 3, testutil.NewTestRNG(1))
	require.NoError(t, err)
	require.Len(t, ghosts, 3)
	for i, g := range ghosts {
		assert.Equal(t, i+1, g.(*DirectionalGhost).index)
	}

	_, err = NewGhosts("clyde", 2, testutil.NewTestRNG(1))
	assert.ErrorIs(t, err, ErrUnknownAgent)
}
