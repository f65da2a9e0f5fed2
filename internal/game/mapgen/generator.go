package mapgen

import (
	"errors"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// ErrNoRoom is returned when the maze has no free cell left for an agent,
// or none left over for food
var ErrNoRoom = errors.New("no free cell left in generated maze")

// MapConfig holds configuration for maze generation
type MapConfig struct {
	Width           int
	Height          int
	GhostCount      int
	NumCapsules     int
	MinGhostSpacing int // Manhattan distance from Pacman's start
	NumWallVeins    int
	MinVeinLength   int
	MaxVeinLength   int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h, ghosts int) MapConfig {
	return MapConfig{
		Width:           w,
		Height:          h,
		GhostCount:      ghosts,
		NumCapsules:     2,
		MinGhostSpacing: 4,
		NumWallVeins:    (w * h) / 25,
		MinVeinLength:   2,
		MaxVeinLength:   w / 4,
	}
}

// Generator handles maze generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new maze generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateLayout builds a walled maze, places Pacman, the ghosts and the
// capsules, and puts food on every other cell Pacman can reach.
func (g *Generator) GenerateLayout() (*game.Layout, error) {
	l := game.NewLayout(g.config.Width, g.config.Height)

	g.placeBorder(l)
	g.placeWallVeins(l)

	// Pacman starts in the largest open region so veins cannot box Pacman in
	reachable := largestRegion(l)
	pacman, ok := g.randomOpenCell(l, func(c core.Coordinate) bool { return reachable[c] })
	if !ok {
		return nil, ErrNoRoom
	}
	l.PacmanStart = pacman

	taken := map[core.Coordinate]bool{pacman: true}
	free := func(c core.Coordinate) bool { return reachable[c] && !taken[c] }

	for i := 0; i < g.config.GhostCount; i++ {
		c, ok := g.randomOpenCell(l, func(c core.Coordinate) bool {
			return free(c) && c.DistanceTo(pacman) >= g.config.MinGhostSpacing
		})
		if !ok {
			// Fallback: any reachable free cell
			if c, ok = g.randomOpenCell(l, free); !ok {
				return nil, ErrNoRoom
			}
		}
		l.GhostStarts = append(l.GhostStarts, c)
		taken[c] = true
	}

	for i := 0; i < g.config.NumCapsules; i++ {
		c, ok := g.randomOpenCell(l, free)
		if !ok {
			break
		}
		l.Capsules = append(l.Capsules, c)
		taken[c] = true
	}

	for c := range reachable {
		if !taken[c] {
			l.Food.Set(c, true)
		}
	}
	// A maze without food can never be won
	if l.Food.Count() == 0 {
		return nil, ErrNoRoom
	}
	return l, nil
}

func (g *Generator) placeBorder(l *game.Layout) {
	for x := 0; x < l.Width; x++ {
		l.Walls.Set(core.NewCoordinate(x, 0), true)
		l.Walls.Set(core.NewCoordinate(x, l.Height-1), true)
	}
	for y := 0; y < l.Height; y++ {
		l.Walls.Set(core.NewCoordinate(0, y), true)
		l.Walls.Set(core.NewCoordinate(l.Width-1, y), true)
	}
}

// placeWallVeins grows straight wall segments from random interior cells.
// Veins stop at the border.
func (g *Generator) placeWallVeins(l *game.Layout) {
	if l.Width < 3 || l.Height < 3 {
		return
	}
	for i := 0; i < g.config.NumWallVeins; i++ {
		length := g.config.MinVeinLength
		if g.config.MaxVeinLength > g.config.MinVeinLength {
			length += g.rng.Intn(g.config.MaxVeinLength - g.config.MinVeinLength + 1)
		}

		c := core.NewCoordinate(1+g.rng.Intn(l.Width-2), 1+g.rng.Intn(l.Height-2))
		dir := core.Actions[g.rng.Intn(4)]
		for step := 0; step < length; step++ {
			if !isInterior(l, c) {
				break
			}
			l.Walls.Set(c, true)
			c = c.Move(dir)
		}
	}
}

// randomOpenCell samples open cells accepted by ok, falling back to a scan
// in reading order once random attempts run out.
func (g *Generator) randomOpenCell(l *game.Layout, ok func(core.Coordinate) bool) (core.Coordinate, bool) {
	maxAttempts := l.Width * l.Height
	for attempts := 0; attempts < maxAttempts; attempts++ {
		c := core.NewCoordinate(g.rng.Intn(l.Width), g.rng.Intn(l.Height))
		if l.IsOpen(c) && ok(c) {
			return c, true
		}
	}

	for idx := 0; idx < l.Width*l.Height; idx++ {
		c := core.FromIndex(idx, l.Width)
		if l.IsOpen(c) && ok(c) {
			return c, true
		}
	}
	return core.Coordinate{}, false
}

func isInterior(l *game.Layout, c core.Coordinate) bool {
	return c.X > 0 && c.Y > 0 && c.X < l.Width-1 && c.Y < l.Height-1
}

// largestRegion returns the biggest set of connected open cells
func largestRegion(l *game.Layout) map[core.Coordinate]bool {
	var best map[core.Coordinate]bool
	visited := make(map[core.Coordinate]bool)
	for idx := 0; idx < l.Width*l.Height; idx++ {
		c := core.FromIndex(idx, l.Width)
		if !l.IsOpen(c) || visited[c] {
			continue
		}
		region := reachableFrom(l, c)
		for cell := range region {
			visited[cell] = true
		}
		if len(region) > len(best) {
			best = region
		}
	}
	return best
}

// reachableFrom flood-fills the open cells connected to start
func reachableFrom(l *game.Layout, start core.Coordinate) map[core.Coordinate]bool {
	seen := map[core.Coordinate]bool{start: true}
	queue := []core.Coordinate{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range c.Neighbors() {
			if l.IsOpen(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}
