package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events"
	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/states"
)

// Agent decides the next action for the agent it controls.
type Agent interface {
	ChooseAction(state *State) (core.Action, error)
}

// GameConfig holds everything needed to start one game
type GameConfig struct {
	Layout   *Layout
	Rules    Rules
	Agents   []Agent // index-aligned with the layout's agents, Pacman first
	GameID   string
	MaxMoves int // 0 means unlimited
	EventBus events.Bus
	Logger   zerolog.Logger // zero value discards engine logs
}

// Outcome summarizes a finished (or interrupted) game
type Outcome struct {
	GameID   string
	Reason   string
	Win      bool
	Score    int
	Moves    int
	Duration time.Duration
}

// Engine plays one game, one agent move per Step.
type Engine struct {
	gameID    string
	state     *State
	agents    []Agent
	current   int
	moves     int
	maxMoves  int
	reason    string
	startTime time.Time
	machine   *states.StateMachine
	eventBus  events.Bus
	logger    zerolog.Logger
}

// NewEngine creates a game engine and publishes the game started event
func NewEngine(cfg GameConfig) (*Engine, error) {
	if cfg.Layout == nil {
		return nil, fmt.Errorf("game config has no layout")
	}
	if len(cfg.Agents) != cfg.Layout.NumAgents() {
		return nil, fmt.Errorf("layout has %d agents but %d were provided: %w",
			cfg.Layout.NumAgents(), len(cfg.Agents), core.ErrInvalidAgent)
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus()
	}

	logger := cfg.Logger.With().Str("component", "GameEngine").Str("game_id", cfg.GameID).Logger()
	e := &Engine{
		gameID:    cfg.GameID,
		state:     NewState(cfg.Layout, cfg.Rules),
		agents:    cfg.Agents,
		maxMoves:  cfg.MaxMoves,
		startTime: time.Now(),
		machine:   states.NewStateMachine(cfg.GameID, cfg.EventBus, logger),
		eventBus:  cfg.EventBus,
		logger:    logger,
	}

	e.eventBus.Publish(events.NewGameStartedEvent(
		e.gameID,
		e.state.NumAgents(),
		cfg.Layout.Width,
		cfg.Layout.Height,
		e.state.NumFood(),
	))
	e.logger.Info().
		Int("width", cfg.Layout.Width).
		Int("height", cfg.Layout.Height).
		Int("agents", e.state.NumAgents()).
		Msg("Game started")

	if err := e.machine.TransitionTo(states.PhaseRunning, "game started"); err != nil {
		return nil, err
	}
	return e, nil
}

// Step lets the agent whose turn it is act once
func (e *Engine) Step() error {
	if !e.machine.CurrentPhase().CanReceiveActions() {
		return core.ErrGameOver
	}

	idx := e.current
	if len(e.state.LegalActions(idx)) == 0 {
		if idx == PacmanIndex {
			e.endGame(events.EndReasonStuck)
			return nil
		}
		e.logger.Debug().Int("agent", idx).Msg("Agent has no legal moves, skipping turn")
		e.advance()
		return nil
	}

	action, err := e.agents[idx].ChooseAction(e.state)
	if err != nil {
		return e.fail(fmt.Errorf("agent %d failed to choose an action: %w", idx, err))
	}

	from := e.state.agents[idx].Position
	next, err := e.state.Successor(idx, action)
	if err != nil {
		return e.fail(err)
	}
	e.state = next
	e.moves++

	e.eventBus.Publish(events.NewAgentMovedEvent(
		e.gameID, e.moves, idx, action, from, next.agents[idx].Position, next.Score(),
	))
	e.advance()

	switch {
	case next.IsWin():
		e.endGame(events.EndReasonWin)
	case next.IsLose():
		e.endGame(events.EndReasonLose)
	case e.maxMoves > 0 && e.moves >= e.maxMoves:
		e.endGame(events.EndReasonMaxMoves)
	}
	return nil
}

func (e *Engine) advance() {
	e.current = (e.current + 1) % e.state.NumAgents()
}

// fail moves the game to the error phase and returns err
func (e *Engine) fail(err error) error {
	e.reason = "error"
	if terr := e.machine.TransitionTo(states.PhaseError, err.Error()); terr != nil {
		e.logger.Error().Err(terr).Msg("Failed to record error phase")
	}
	e.logger.Error().Err(err).Msg("Game aborted")
	return err
}

func (e *Engine) endGame(reason string) {
	e.reason = reason
	if err := e.machine.TransitionTo(states.PhaseEnded, reason); err != nil {
		e.logger.Error().Err(err).Msg("Failed to record end phase")
	}
	duration := time.Since(e.startTime)

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, reason, e.state.Score(), e.moves, duration))
	e.logger.Info().
		Str("reason", reason).
		Int("score", e.state.Score()).
		Int("moves", e.moves).
		Dur("duration", duration).
		Msg("Game over")
}

// Run steps the game until it ends or ctx is cancelled. Cancellation is only
// observed between moves.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	for !e.IsGameOver() {
		select {
		case <-ctx.Done():
			return e.Outcome(), ctx.Err()
		default:
		}
		if err := e.Step(); err != nil {
			return e.Outcome(), err
		}
	}
	return e.Outcome(), nil
}

// Outcome reports the current result of the game
func (e *Engine) Outcome() Outcome {
	return Outcome{
		GameID:   e.gameID,
		Reason:   e.reason,
		Win:      e.state.IsWin(),
		Score:    e.state.Score(),
		Moves:    e.moves,
		Duration: time.Since(e.startTime),
	}
}

// Public accessors
func (e *Engine) State() *State           { return e.state }
func (e *Engine) GameID() string          { return e.gameID }
func (e *Engine) IsGameOver() bool        { return e.machine.CurrentPhase().IsTerminal() }
func (e *Engine) Phase() states.GamePhase { return e.machine.CurrentPhase() }
func (e *Engine) CurrentAgent() int       { return e.current }
