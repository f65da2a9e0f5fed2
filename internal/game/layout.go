package game

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// Layout symbols
const (
	SymbolWall    = '%'
	SymbolFood    = '.'
	SymbolCapsule = 'o'
	SymbolPacman  = 'P'
	SymbolGhost   = 'G'
	SymbolEmpty   = ' '

	// SymbolScaredGhost is only drawn for game states, never parsed
	SymbolScaredGhost = 'S'
)

// Layout is the static description of a maze: walls, initial food and
// capsules, and the start cell of every agent. Pacman is always agent 0;
// ghosts follow in reading order.
type Layout struct {
	Width, Height int
	Walls         *core.Grid
	Food          *core.Grid
	Capsules      []core.Coordinate
	PacmanStart   core.Coordinate
	GhostStarts   []core.Coordinate
}

// NewLayout creates an empty, wall-free layout
func NewLayout(w, h int) *Layout {
	return &Layout{
		Width:  w,
		Height: h,
		Walls:  core.NewGrid(w, h),
		Food:   core.NewGrid(w, h),
	}
}

// NumAgents returns Pacman plus the number of ghosts
func (l *Layout) NumAgents() int {
	return 1 + len(l.GhostStarts)
}

// ParseLayout reads a layout from its text form. Every line must have the
// same width and exactly one Pacman must be present.
func ParseLayout(text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("empty layout: %w", core.ErrInvalidCoordinates)
	}

	width := len(lines[0])
	l := NewLayout(width, len(lines))
	pacmanFound := false

	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("layout row %d has width %d, want %d: %w", y, len(line), width, core.ErrInvalidCoordinates)
		}
		for x, ch := range line {
			c := core.NewCoordinate(x, y)
			switch ch {
			case SymbolWall:
				l.Walls.Set(c, true)
			case SymbolFood:
				l.Food.Set(c, true)
			case SymbolCapsule:
				l.Capsules = append(l.Capsules, c)
			case SymbolPacman:
				if pacmanFound {
					return nil, core.WrapLayoutError(c, fmt.Errorf("second pacman"))
				}
				pacmanFound = true
				l.PacmanStart = c
			case SymbolGhost:
				l.GhostStarts = append(l.GhostStarts, c)
			case SymbolEmpty:
			default:
				return nil, core.WrapLayoutError(c, fmt.Errorf("unknown symbol %q", ch))
			}
		}
	}

	if !pacmanFound {
		return nil, fmt.Errorf("layout has no pacman")
	}
	return l, nil
}

// LoadLayout reads and parses a layout file
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	l, err := ParseLayout(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	return l, nil
}

// IsOpen reports whether an agent may stand on c
func (l *Layout) IsOpen(c core.Coordinate) bool {
	return l.Walls.InBounds(c) && !l.Walls.Get(c)
}

// String renders the layout back into its text form
func (l *Layout) String() string {
	rows := make([][]byte, l.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(string(SymbolEmpty), l.Width))
		for x := 0; x < l.Width; x++ {
			c := core.NewCoordinate(x, y)
			switch {
			case l.Walls.Get(c):
				rows[y][x] = SymbolWall
			case l.Food.Get(c):
				rows[y][x] = SymbolFood
			}
		}
	}
	for _, c := range l.Capsules {
		rows[c.Y][c.X] = SymbolCapsule
	}
	for _, c := range l.GhostStarts {
		rows[c.Y][c.X] = SymbolGhost
	}
	rows[l.PacmanStart.Y][l.PacmanStart.X] = SymbolPacman

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
