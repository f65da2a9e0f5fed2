package core

import (
	"fmt"
	"strings"
)

// Action is one of the fixed moves an agent can take on a turn.
type Action int

const (
	North Action = iota
	South
	East
	West
	Stop
)

// Actions lists every action in enumeration order. Legal move generation
// follows this order, so search tie-breaks do too.
var Actions = [...]Action{North, South, East, West, Stop}

var actionNames = map[Action]string{
	North: "North",
	South: "South",
	East:  "East",
	West:  "West",
	Stop:  "Stop",
}

// actionVectors holds the coordinate offset of each action. Row 0 is the top
// of the maze, so North decreases Y.
var actionVectors = map[Action]Coordinate{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
	Stop:  {X: 0, Y: 0},
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// IsValid reports whether a is one of the enumerated actions.
func (a Action) IsValid() bool {
	_, ok := actionNames[a]
	return ok
}

// Vector returns the offset applied to a position by this action
func (a Action) Vector() Coordinate {
	return actionVectors[a]
}

// Reverse returns the opposite direction. Stop is its own reverse.
func (a Action) Reverse() Action {
	switch a {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Stop
	}
}

// ParseAction converts a case-insensitive action name into an Action
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return Stop, fmt.Errorf("unknown action %q: %w", s, ErrIllegalAction)
}
