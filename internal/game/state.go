package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/MultiAgentSearch/internal/game/core"
)

// PacmanIndex is the agent index of the single maximizing agent
const PacmanIndex = 0

// AgentState is the per-agent part of a State
type AgentState struct {
	Position    core.Coordinate
	Start       core.Coordinate
	Direction   core.Action
	ScaredTimer int
}

// IsScared reports whether a ghost can currently be eaten
func (a AgentState) IsScared() bool { return a.ScaredTimer > 0 }

// State is a game position. It is never mutated after construction: every
// transition returns a new State that shares unchanged data with its parent.
type State struct {
	layout   *Layout
	rules    Rules
	food     *core.Grid
	capsules []core.Coordinate
	agents   []AgentState
	score    int
	win      bool
	lose     bool
}

// NewState creates the initial state of a game on the given layout
func NewState(l *Layout, rules Rules) *State {
	agents := make([]AgentState, l.NumAgents())
	agents[PacmanIndex] = AgentState{Position: l.PacmanStart, Start: l.PacmanStart, Direction: core.Stop}
	for i, g := range l.GhostStarts {
		agents[i+1] = AgentState{Position: g, Start: g, Direction: core.Stop}
	}

	capsules := make([]core.Coordinate, len(l.Capsules))
	copy(capsules, l.Capsules)

	return &State{
		layout:   l,
		rules:    rules,
		food:     l.Food.Copy(),
		capsules: capsules,
		agents:   agents,
	}
}

func (s *State) clone() *State {
	next := *s
	next.agents = make([]AgentState, len(s.agents))
	copy(next.agents, s.agents)
	return &next
}

func (s *State) NumAgents() int  { return len(s.agents) }
func (s *State) IsWin() bool     { return s.win }
func (s *State) IsLose() bool    { return s.lose }
func (s *State) Score() int      { return s.score }
func (s *State) Layout() *Layout { return s.layout }

// LegalActions returns the actions agentIndex may take, in action
// enumeration order. Terminal states have no legal actions.
func (s *State) LegalActions(agentIndex int) []core.Action {
	if s.win || s.lose || agentIndex < 0 || agentIndex >= len(s.agents) {
		return nil
	}

	agent := s.agents[agentIndex]
	actions := make([]core.Action, 0, len(core.Actions))
	for _, a := range core.Actions[:4] {
		if s.layout.IsOpen(agent.Position.Move(a)) {
			actions = append(actions, a)
		}
	}

	if agentIndex == PacmanIndex {
		return append(actions, core.Stop)
	}

	// Ghosts may only turn back at a dead end
	reverse := agent.Direction.Reverse()
	if len(actions) > 1 && reverse != core.Stop {
		for i, a := range actions {
			if a == reverse {
				actions = append(actions[:i], actions[i+1:]...)
				break
			}
		}
	}
	return actions
}

func (s *State) isLegal(agentIndex int, action core.Action) bool {
	for _, a := range s.LegalActions(agentIndex) {
		if a == action {
			return true
		}
	}
	return false
}

// Successor returns the state reached when agentIndex takes action
func (s *State) Successor(agentIndex int, action core.Action) (*State, error) {
	if s.win || s.lose {
		return nil, core.WrapActionError(agentIndex, action, core.ErrGameOver)
	}
	if agentIndex < 0 || agentIndex >= len(s.agents) {
		return nil, core.WrapActionError(agentIndex, action, core.ErrInvalidAgent)
	}
	if !s.isLegal(agentIndex, action) {
		return nil, core.WrapActionError(agentIndex, action, core.ErrIllegalAction)
	}

	next := s.clone()
	agent := &next.agents[agentIndex]
	agent.Position = agent.Position.Move(action)
	if action != core.Stop {
		agent.Direction = action
	}

	if agentIndex == PacmanIndex {
		next.consume(agent.Position)
		next.score -= next.rules.TimePenalty
		for ghost := 1; ghost < len(next.agents); ghost++ {
			next.checkCollision(ghost)
		}
	} else {
		if agent.ScaredTimer > 0 {
			agent.ScaredTimer--
		}
		next.checkCollision(agentIndex)
	}
	return next, nil
}

// consume eats whatever Pacman finds at pos
func (s *State) consume(pos core.Coordinate) {
	if s.food.Get(pos) {
		s.food = s.food.Copy()
		s.food.Set(pos, false)
		s.score += s.rules.FoodScore
		if s.food.Count() == 0 && !s.lose {
			s.score += s.rules.WinPoints
			s.win = true
		}
	}

	for i, c := range s.capsules {
		if c != pos {
			continue
		}
		remaining := make([]core.Coordinate, 0, len(s.capsules)-1)
		remaining = append(remaining, s.capsules[:i]...)
		s.capsules = append(remaining, s.capsules[i+1:]...)
		for ghost := 1; ghost < len(s.agents); ghost++ {
			s.agents[ghost].ScaredTimer = s.rules.ScaredTime
		}
		break
	}
}

func (s *State) checkCollision(ghostIndex int) {
	ghost := &s.agents[ghostIndex]
	if ghost.Position != s.agents[PacmanIndex].Position {
		return
	}
	if ghost.IsScared() {
		s.score += s.rules.EatGhostScore
		ghost.Position = ghost.Start
		ghost.Direction = core.Stop
		ghost.ScaredTimer = 0
		return
	}
	if !s.win {
		s.score -= s.rules.LosePoints
		s.lose = true
	}
}

// PacmanPosition returns Pacman's cell
func (s *State) PacmanPosition() core.Coordinate {
	return s.agents[PacmanIndex].Position
}

// AgentState returns a copy of one agent's state
func (s *State) AgentState(agentIndex int) (AgentState, error) {
	if agentIndex < 0 || agentIndex >= len(s.agents) {
		return AgentState{}, fmt.Errorf("agent %d: %w", agentIndex, core.ErrInvalidAgent)
	}
	return s.agents[agentIndex], nil
}

// GhostStates returns a copy of every ghost's state in agent order
func (s *State) GhostStates() []AgentState {
	ghosts := make([]AgentState, len(s.agents)-1)
	copy(ghosts, s.agents[1:])
	return ghosts
}

// GhostPositions returns every ghost's cell in agent order
func (s *State) GhostPositions() []core.Coordinate {
	out := make([]core.Coordinate, 0, len(s.agents)-1)
	for _, g := range s.agents[1:] {
		out = append(out, g.Position)
	}
	return out
}

func (s *State) HasFood(c core.Coordinate) bool { return s.food.Get(c) }
func (s *State) NumFood() int                   { return s.food.Count() }

// FoodList returns the remaining food cells in row-major order
func (s *State) FoodList() []core.Coordinate { return s.food.List() }

// Capsules returns the remaining capsule cells
func (s *State) Capsules() []core.Coordinate {
	out := make([]core.Coordinate, len(s.capsules))
	copy(out, s.capsules)
	return out
}

func (s *State) IsWall(c core.Coordinate) bool { return !s.layout.IsOpen(c) }

// String renders the maze with agents drawn over food and capsules
func (s *State) String() string {
	l := s.layout
	rows := make([][]byte, l.Height)
	for y := range rows {
		rows[y] = make([]byte, l.Width)
		for x := range rows[y] {
			c := core.NewCoordinate(x, y)
			switch {
			case l.Walls.Get(c):
				rows[y][x] = SymbolWall
			case s.food.Get(c):
				rows[y][x] = SymbolFood
			default:
				rows[y][x] = SymbolEmpty
			}
		}
	}
	for _, c := range s.capsules {
		rows[c.Y][c.X] = SymbolCapsule
	}
	for _, g := range s.agents[1:] {
		if g.IsScared() {
			rows[g.Position.Y][g.Position.X] = SymbolScaredGhost
		} else {
			rows[g.Position.Y][g.Position.X] = SymbolGhost
		}
	}
	p := s.PacmanPosition()
	rows[p.Y][p.X] = SymbolPacman

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("Score: %d\n", s.score))
	return sb.String()
}
