package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrIllegalAction      = errors.New("illegal action")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidAgent       = errors.New("invalid agent index")
)

// WrapActionError attaches the acting agent and action to err.
// It returns nil when err is nil.
func WrapActionError(agentIndex int, action Action, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("agent %d: %s: %w", agentIndex, action, err)
}

// WrapLayoutError attaches a layout position to err.
func WrapLayoutError(c Coordinate, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("layout cell %s: %w", c, err)
}
