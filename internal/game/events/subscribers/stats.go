package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/events"
)

// GameResult summarizes one finished game
type GameResult struct {
	GameID     string
	Reason     string
	FinalScore int
	Moves      int
	// MovesByAgent counts applied actions per agent index
	MovesByAgent map[int]int
}

// StatsSubscriber accumulates per-game results across any number of games
type StatsSubscriber struct {
	id      string
	mu      sync.Mutex
	pending map[string]map[int]int
	results []GameResult
}

func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{
		id:      id,
		pending: make(map[string]map[int]int),
	}
}

func (s *StatsSubscriber) ID() string { return s.id }

func (s *StatsSubscriber) InterestedIn(eventType string) bool {
	return eventType == events.TypeAgentMoved || eventType == events.TypeGameEnded
}

func (s *StatsSubscriber) HandleEvent(event events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := event.(type) {
	case *events.AgentMovedEvent:
		counts, ok := s.pending[e.GameID()]
		if !ok {
			counts = make(map[int]int)
			s.pending[e.GameID()] = counts
		}
		counts[e.AgentIndex]++

	case *events.GameEndedEvent:
		counts := s.pending[e.GameID()]
		if counts == nil {
			counts = make(map[int]int)
		}
		delete(s.pending, e.GameID())
		s.results = append(s.results, GameResult{
			GameID:       e.GameID(),
			Reason:       e.Reason,
			FinalScore:   e.FinalScore,
			Moves:        e.Moves,
			MovesByAgent: counts,
		})
	}
}

// Results returns a copy of every finished game in completion order
func (s *StatsSubscriber) Results() []GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GameResult, len(s.results))
	copy(out, s.results)
	return out
}

// Scores returns the final scores of finished games as float64 values
func (s *StatsSubscriber) Scores() []float64 {
	results := s.Results()
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.FinalScore)
	}
	return scores
}

// Wins returns how many finished games Pacman won
func (s *StatsSubscriber) Wins() int {
	wins := 0
	for _, r := range s.Results() {
		if r.Reason == events.EndReasonWin {
			wins++
		}
	}
	return wins
}
