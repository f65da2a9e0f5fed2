package core

import "fmt"

// Coordinate represents a cell of the maze
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a grid index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a grid index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors in action order
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		c.Move(North),
		c.Move(South),
		c.Move(East),
		c.Move(West),
	}
}

// Add returns the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// Move returns the coordinate reached by taking action a from c.
func (c Coordinate) Move(a Action) Coordinate {
	return c.Add(a.Vector())
}

// DirectionTo returns the action leading from c to an adjacent coordinate.
// The second result is false when the coordinates are not adjacent.
func (c Coordinate) DirectionTo(other Coordinate) (Action, bool) {
	if !c.IsAdjacentTo(other) {
		return Stop, false
	}
	for _, a := range Actions[:4] {
		if c.Move(a) == other {
			return a, true
		}
	}
	return Stop, false
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
