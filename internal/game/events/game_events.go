package events

import (
	"time"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted  = "game.started"
	TypeGameEnded    = "game.ended"
	TypeAgentMoved   = "agent.moved"
	TypePhaseChanged = "game.phase_changed"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	NumAgents int
	MapWidth  int
	MapHeight int
	FoodCount int
}

func NewGameStartedEvent(gameID string, numAgents, width, height, food int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBaseEvent(TypeGameStarted, gameID),
		NumAgents: numAgents,
		MapWidth:  width,
		MapHeight: height,
		FoodCount: food,
	}
}

// AgentMovedEvent is published after every applied action
type AgentMovedEvent struct {
	BaseEvent
	Move       int
	AgentIndex int
	Action     core.Action
	From       core.Coordinate
	To         core.Coordinate
	Score      int
}

func NewAgentMovedEvent(gameID string, move, agentIndex int, action core.Action, from, to core.Coordinate, score int) *AgentMovedEvent {
	return &AgentMovedEvent{
		BaseEvent:  newBaseEvent(TypeAgentMoved, gameID),
		Move:       move,
		AgentIndex: agentIndex,
		Action:     action,
		From:       from,
		To:         to,
		Score:      score,
	}
}

// Reasons a game can end
const (
	EndReasonWin      = "win"
	EndReasonLose     = "lose"
	EndReasonMaxMoves = "max_moves"
	EndReasonStuck    = "no_legal_moves"
)

// GameEndedEvent is published when a game ends
type GameEndedEvent struct {
	BaseEvent
	Reason     string
	FinalScore int
	Moves      int
	Duration   time.Duration
}

func NewGameEndedEvent(gameID, reason string, score, moves int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:  newBaseEvent(TypeGameEnded, gameID),
		Reason:     reason,
		FinalScore: score,
		Moves:      moves,
		Duration:   duration,
	}
}

// PhaseChangedEvent is published on every lifecycle transition of a game
type PhaseChangedEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

func NewPhaseChangedEvent(gameID, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBaseEvent(TypePhaseChanged, gameID),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}
