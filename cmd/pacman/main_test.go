package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/config"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	require.NoError(t, config.Init(""))
	c := config.Get()
	c.Search.Algorithm = "alphabeta"
	c.Search.Depth = 1
	c.Game.Games = 3
	c.Game.Seed = 7
	c.Game.MaxMoves = 150
	return c
}

func snapshot(cfg *config.Config) func() *config.Config {
	return func() *config.Config { return cfg }
}

func TestRun_GeneratedMazes(t *testing.T) {
	cfg := testConfig(t)

	summary, err := run(context.Background(), snapshot(cfg), testutil.NopLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Games)
	require.Len(t, summary.Outcomes, 3)
	for _, o := range summary.Outcomes {
		assert.NotEmpty(t, o.GameID)
		assert.NotEmpty(t, o.Reason)
		assert.LessOrEqual(t, o.Moves, cfg.Game.MaxMoves)
	}
	assert.LessOrEqual(t, summary.Wins, 3)
	assert.Contains(t, summary.String(), "Games: 3")
}

func TestRun_LayoutFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game.Layout = filepath.Join(t.TempDir(), "capsuleTrap.lay")
	require.NoError(t, os.WriteFile(cfg.Game.Layout, []byte(testutil.CapsuleTrap), 0644))
	cfg.Game.Ghost = "directional"
	cfg.Search.Algorithm = "ReflexAgent"
	cfg.Game.Games = 1

	summary, err := run(context.Background(), snapshot(cfg), testutil.NopLogger())
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	assert.Zero(t, summary.StdScore)
	assert.Equal(t, float64(summary.Outcomes[0].Score), summary.MeanScore)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := run(ctx, snapshot(cfg), testutil.NopLogger())
	require.NoError(t, err)
	assert.Zero(t, summary.Games)
}

func TestRun_MissingLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game.Layout = filepath.Join(t.TempDir(), "missing.lay")

	_, err := run(context.Background(), snapshot(cfg), testutil.NopLogger())
	assert.Error(t, err)
}

func TestRun_TakesSnapshotPerGame(t *testing.T) {
	base := testConfig(t)
	base.Game.Games = 2

	calls := 0
	current := func() *config.Config {
		calls++
		c := *base
		c.Game.MaxMoves = calls * 5
		return &c
	}

	summary, err := run(context.Background(), current, testutil.NopLogger())
	require.NoError(t, err)

	// One snapshot for the run, then one per game
	assert.Equal(t, 3, calls)
	require.Len(t, summary.Outcomes, 2)
	assert.LessOrEqual(t, summary.Outcomes[0].Moves, 10)
	assert.LessOrEqual(t, summary.Outcomes[1].Moves, 15)
}
