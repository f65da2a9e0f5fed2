package states

import "fmt"

// GamePhase is where a game is in its lifecycle
type GamePhase int

const (
	// PhaseInitializing - state built, no move played yet
	PhaseInitializing GamePhase = iota

	// PhaseRunning - agents are taking turns
	PhaseRunning

	// PhaseEnded - won, lost, out of moves or Pacman stuck
	PhaseEnded

	// PhaseError - an agent or a transition failed
	PhaseError
)

var phaseNames = map[GamePhase]string{
	PhaseInitializing: "Initializing",
	PhaseRunning:      "Running",
	PhaseEnded:        "Ended",
	PhaseError:        "Error",
}

func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", p)
}

// IsTerminal returns true if no transition leaves the phase
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveActions returns true if agents may move in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the phases reachable from p
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseError}
	default:
		return []GamePhase{}
	}
}

func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a phase name back to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for phase, name := range phaseNames {
		if name == s {
			return phase, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("unknown game phase %q", s)
}
