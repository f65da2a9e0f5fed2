package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/testutil"
)

func TestDefaultMapConfig(t *testing.T) {
	w, h, ghosts := 20, 15, 2
	config := DefaultMapConfig(w, h, ghosts)

	assert.Equal(t, w, config.Width)
	assert.Equal(t, h, config.Height)
	assert.Equal(t, ghosts, config.GhostCount)
	assert.Equal(t, 2, config.NumCapsules)
	assert.Equal(t, 4, config.MinGhostSpacing)
	assert.Equal(t, (w*h)/25, config.NumWallVeins)
	assert.Equal(t, 2, config.MinVeinLength)
	assert.Equal(t, w/4, config.MaxVeinLength)
}

func TestNewGenerator(t *testing.T) {
	config := DefaultMapConfig(10, 10, 1)
	rng := testutil.NewTestRNG(12345)
	generator := NewGenerator(config, rng)

	require.NotNil(t, generator)
	assert.Equal(t, config, generator.config)
	assert.Same(t, rng, generator.rng)
}

func TestPlaceWallVeins(t *testing.T) {
	t.Run("FixedLengthVein", func(t *testing.T) {
		config := DefaultMapConfig(30, 30, 0)
		config.NumWallVeins = 1
		config.MinVeinLength = 3
		config.MaxVeinLength = 3
		g := NewGenerator(config, testutil.NewTestRNG(12345))
		l := game.NewLayout(config.Width, config.Height)

		g.placeWallVeins(l)

		walls := l.Walls.Count()
		assert.GreaterOrEqual(t, walls, 1)
		assert.LessOrEqual(t, walls, 3)
		for _, c := range l.Walls.List() {
			assert.True(t, isInterior(l, c), "Veins never touch the border: %s", c)
		}
	})

	t.Run("NoVeins", func(t *testing.T) {
		config := DefaultMapConfig(10, 10, 0)
		config.NumWallVeins = 0
		g := NewGenerator(config, testutil.NewTestRNG(12345))
		l := game.NewLayout(config.Width, config.Height)

		g.placeWallVeins(l)
		assert.Zero(t, l.Walls.Count())
	})

	t.Run("TinyBoard", func(t *testing.T) {
		config := DefaultMapConfig(2, 2, 0)
		config.NumWallVeins = 10
		g := NewGenerator(config, testutil.NewTestRNG(12345))
		l := game.NewLayout(config.Width, config.Height)

		assert.NotPanics(t, func() { g.placeWallVeins(l) })
		assert.Zero(t, l.Walls.Count())
	})
}

func TestGenerateLayout_OpenMaze(t *testing.T) {
	config := DefaultMapConfig(12, 8, 2)
	config.NumWallVeins = 0

	for seed := uint64(1); seed <= 10; seed++ {
		l, err := NewGenerator(config, testutil.NewTestRNG(seed)).GenerateLayout()
		require.NoError(t, err)

		interior := (config.Width - 2) * (config.Height - 2)
		assert.Equal(t, 2*config.Width+2*(config.Height-2), l.Walls.Count(), "Only the border is walled")
		assert.Equal(t, interior-1-2-2, l.Food.Count(), "Every free cell holds food")
		require.Len(t, l.GhostStarts, 2)
		require.Len(t, l.Capsules, 2)

		seen := map[core.Coordinate]bool{l.PacmanStart: true}
		for _, ghost := range l.GhostStarts {
			assert.GreaterOrEqual(t, ghost.DistanceTo(l.PacmanStart), config.MinGhostSpacing)
			assert.False(t, seen[ghost])
			seen[ghost] = true
		}
		for _, c := range l.Capsules {
			assert.False(t, seen[c])
			assert.False(t, l.Food.Get(c))
			seen[c] = true
		}
	}
}

func TestGenerateLayout_FullIntegration(t *testing.T) {
	config := DefaultMapConfig(20, 11, 2)

	for seed := uint64(1); seed <= 10; seed++ {
		l, err := NewGenerator(config, testutil.NewTestRNG(seed)).GenerateLayout()
		require.NoError(t, err)

		for x := 0; x < l.Width; x++ {
			assert.True(t, l.Walls.Get(core.NewCoordinate(x, 0)))
			assert.True(t, l.Walls.Get(core.NewCoordinate(x, l.Height-1)))
		}
		for y := 0; y < l.Height; y++ {
			assert.True(t, l.Walls.Get(core.NewCoordinate(0, y)))
			assert.True(t, l.Walls.Get(core.NewCoordinate(l.Width-1, y)))
		}

		reachable := reachableFrom(l, l.PacmanStart)
		for _, c := range l.Food.List() {
			assert.True(t, reachable[c], "Food at %s cannot be reached", c)
			assert.True(t, l.IsOpen(c))
		}
		for _, c := range append(append([]core.Coordinate{}, l.GhostStarts...), l.Capsules...) {
			assert.True(t, reachable[c], "%s cannot be reached", c)
		}

		// The text form parses back into the same maze
		parsed, err := game.ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l.String(), parsed.String())
		assert.Equal(t, l.PacmanStart, parsed.PacmanStart)
		assert.Equal(t, l.Food.Count(), parsed.Food.Count())
	}
}

func TestGenerateLayout_Deterministic(t *testing.T) {
	config := DefaultMapConfig(16, 9, 3)

	a, err := NewGenerator(config, testutil.NewTestRNG(99)).GenerateLayout()
	require.NoError(t, err)
	b, err := NewGenerator(config, testutil.NewTestRNG(99)).GenerateLayout()
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestGenerateLayout_NoRoom(t *testing.T) {
	config := DefaultMapConfig(3, 3, 1)
	config.NumWallVeins = 0

	_, err := NewGenerator(config, testutil.NewTestRNG(1)).GenerateLayout()
	assert.ErrorIs(t, err, ErrNoRoom)
}

func TestGenerateLayout_NoRoomForFood(t *testing.T) {
	// Two interior cells: Pacman takes one and the ghost the other
	config := DefaultMapConfig(4, 3, 1)
	config.NumWallVeins = 0

	_, err := NewGenerator(config, testutil.NewTestRNG(1)).GenerateLayout()
	assert.ErrorIs(t, err, ErrNoRoom)

	// Without the ghost the leftover cell holds food
	config.GhostCount = 0
	config.NumCapsules = 0
	l, err := NewGenerator(config, testutil.NewTestRNG(1)).GenerateLayout()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Food.Count())
}

func TestLargestRegion(t *testing.T) {
	l := game.NewLayout(7, 3)
	g := NewGenerator(DefaultMapConfig(7, 3, 0), testutil.NewTestRNG(1))
	g.placeBorder(l)
	l.Walls.Set(core.NewCoordinate(2, 1), true)

	region := largestRegion(l)
	assert.Len(t, region, 3)
	for x := 3; x <= 5; x++ {
		assert.True(t, region[core.NewCoordinate(x, 1)])
	}
	assert.False(t, region[core.NewCoordinate(1, 1)])
}
