package net

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/peterkuimelis/hanabi/internal/game"
	"github.com/peterkuimelis/hanabi/internal/log"
)

// Streamer is an event logger that forwards every event to a watcher as a
// notify message. The first write error is kept and all later sends fail
// with it.
type Streamer struct {
	log.MemoryLogger
	enc *json.Encoder
	mu  sync.Mutex
	err error
}

// NewStreamer creates a streamer writing JSON lines to w.
func NewStreamer(w io.Writer) *Streamer {
	return &Streamer{enc: json.NewEncoder(w)}
}

func (s *Streamer) Log(event log.GameEvent) {
	s.MemoryLogger.Log(event)
	_ = s.Send(ServerMessage{Type: MsgNotify, Event: EventViewOf(s.LastEvent())})
}

// Send writes one message.
func (s *Streamer) Send(msg ServerMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.err = s.enc.Encode(msg)
	return s.err
}

// Err returns the first write error, if any.
func (s *Streamer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// EventViewOf converts a logged event.
func EventViewOf(e log.GameEvent) *EventView {
	return &EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// BuildStateView snapshots the table.
func BuildStateView(g *game.Game) *StateView {
	b := g.Board()
	sv := &StateView{
		Turn:       g.Turns(),
		Active:     g.ActiveSeat(),
		ClueTokens: g.ClueTokens(),
		Strikes:    g.Strikes(),
		Score:      g.Score(),
		DeckCount:  g.DeckCount(),
		LastPlayer: g.LastPlayer(),
		Stacks:     make(map[string]int, len(game.Suits)),
	}
	for _, s := range game.Suits {
		sv.Stacks[s.String()] = int(b.Top(s))
	}
	for _, p := range g.Players() {
		hv := HandView{Player: p.ID, HasPlay: p.HasPlay, Chop: p.Chop()}
		for _, s := range p.Hand() {
			hv.Cards = append(hv.Cards, SlotViewOf(s))
		}
		sv.Hands = append(sv.Hands, hv)
	}
	return sv
}

// SlotViewOf converts one hand slot.
func SlotViewOf(s *game.Slot) SlotView {
	return SlotView{
		Card:       s.Card().String(),
		Clued:      s.Clued(),
		Play:       s.Play(),
		Save:       s.Save(),
		Trash:      s.Trash(),
		Candidates: s.Count(),
	}
}
