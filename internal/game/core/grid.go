package core

// Grid is a W x H boolean cell map stored row-major. It backs both the wall
// layout and the remaining food of a maze.
type Grid struct {
	W, H  int
	cells []bool
}

func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, cells: make([]bool, w*h)}
}

func (g *Grid) Idx(x, y int) int      { return y*g.W + x }
func (g *Grid) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(c Coordinate) bool {
	return c.IsValid(g.W, g.H)
}

// Get returns the cell value, or false for out-of-bounds coordinates
func (g *Grid) Get(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[c.ToIndex(g.W)]
}

// Set updates a cell. Out-of-bounds coordinates are ignored.
func (g *Grid) Set(c Coordinate, v bool) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.ToIndex(g.W)] = v
}

// Count returns the number of true cells
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// List returns the coordinates of every true cell in row-major order
func (g *Grid) List() []Coordinate {
	var out []Coordinate
	for i, v := range g.cells {
		if v {
			out = append(out, FromIndex(i, g.W))
		}
	}
	return out
}

// Copy returns a deep copy of the grid
func (g *Grid) Copy() *Grid {
	c := &Grid{W: g.W, H: g.H, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}
