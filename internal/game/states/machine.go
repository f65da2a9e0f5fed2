package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events"
)

// ErrInvalidTransition is returned for transitions the current phase forbids
var ErrInvalidTransition = errors.New("invalid phase transition")

// Transition represents a phase change in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine tracks the lifecycle phase of one game
type StateMachine struct {
	mu           sync.RWMutex
	gameID       string
	currentPhase GamePhase
	history      []Transition
	eventBus     events.Publisher
	logger       zerolog.Logger
}

// NewStateMachine creates a machine in PhaseInitializing. eventBus may be nil.
func NewStateMachine(gameID string, eventBus events.Publisher, logger zerolog.Logger) *StateMachine {
	return &StateMachine{
		gameID:       gameID,
		currentPhase: PhaseInitializing,
		history:      make([]Transition, 0, 4),
		eventBus:     eventBus,
		logger:       logger.With().Str("component", "StateMachine").Logger(),
	}
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo moves to targetPhase and publishes a phase changed event
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	previousPhase := sm.currentPhase
	if !previousPhase.CanTransitionTo(targetPhase) {
		sm.mu.Unlock()
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, previousPhase, targetPhase)
	}
	sm.currentPhase = targetPhase
	sm.history = append(sm.history, Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	sm.mu.Unlock()

	// Publish outside the lock so handlers may query the machine
	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewPhaseChangedEvent(
			sm.gameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("Phase transition completed")

	return nil
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
