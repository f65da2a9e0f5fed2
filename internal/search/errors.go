package search

import "errors"

var (
	// ErrNoLegalMoves is returned when the maximizing agent cannot act at
	// the root. Callers should treat the position as terminal.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrNotImplemented is returned for algorithms that have no policy
	ErrNotImplemented = errors.New("search algorithm not implemented")
)
