package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/hanabi/internal/game"
	"github.com/peterkuimelis/hanabi/internal/log"
	hanabinet "github.com/peterkuimelis/hanabi/internal/net"
)

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	Events     []hanabinet.EventView `json:"events"`
	State      *hanabinet.StateView  `json:"state,omitempty"`
	NextAction string                `json:"next_action,omitempty"`
	GameOver   bool                  `json:"game_over"`
	Result     *game.GameResult      `json:"result,omitempty"`
}

// GameSession is one game stepped through tool calls.
type GameSession struct {
	game   *game.Game
	logger *log.MemoryLogger

	mu     sync.Mutex
	cursor int // events already returned to the caller
}

// NewGameSession deals a game from cfg. Events are buffered until the next
// response.
func NewGameSession(cfg game.Config) (*GameSession, error) {
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	g, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	return &GameSession{game: g, logger: logger}, nil
}

// step advances up to n turns, stopping early when the game ends.
func (s *GameSession) step(n int) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n && !s.game.Over(); i++ {
		s.game.Step()
	}
	return s.response()
}

// snapshot returns pending events and the current table without advancing.
func (s *GameSession) snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.response()
}

// response drains events since the last call. Callers hold s.mu.
func (s *GameSession) response() *ToolResponse {
	all := s.logger.Events()
	resp := &ToolResponse{
		Events: []hanabinet.EventView{},
		State:  hanabinet.BuildStateView(s.game),
	}
	for _, e := range all[s.cursor:] {
		resp.Events = append(resp.Events, *hanabinet.EventViewOf(e))
	}
	s.cursor = len(all)

	if s.game.Over() {
		res := s.game.Result()
		resp.GameOver = true
		resp.Result = &res
		return resp
	}
	resp.NextAction = s.preview()
	return resp
}

// preview describes what the next seat would do, without doing it. It is
// empty when the next step ends the game.
func (s *GameSession) preview() string {
	seat, ok := s.game.NextSeat()
	if !ok {
		return ""
	}
	p := s.game.Player(seat)
	if p.HandSize() == 0 {
		return ""
	}
	return fmt.Sprintf("P%d: %s", seat, p.Decide(s.game))
}

// respondJSON marshals a tool response to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
