package net

import "github.com/peterkuimelis/hanabi/internal/game"

// Message types for the JSON-lines protocol over TCP.
const (
	MsgJoin     = "join"
	MsgNotify   = "notify"
	MsgState    = "state"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "state"
	State *StateView `json:"state,omitempty"`

	// For "game_over"
	Result *game.GameResult `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a game event as sent to the watcher.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is the whole table after a turn. Watchers see every hand.
type StateView struct {
	Turn       int            `json:"turn"`
	Active     int            `json:"active"`
	ClueTokens int            `json:"clue_tokens"`
	Strikes    int            `json:"strikes"`
	Score      int            `json:"score"`
	DeckCount  int            `json:"deck_count"`
	LastPlayer int            `json:"last_player"`
	Stacks     map[string]int `json:"stacks"`
	Hands      []HandView     `json:"hands"`
}

// HandView is one player's hand, oldest card first.
type HandView struct {
	Player  int        `json:"player"`
	HasPlay bool       `json:"has_play,omitempty"`
	Chop    int        `json:"chop"`
	Cards   []SlotView `json:"cards"`
}

// SlotView is one card plus what its holder knows about it.
type SlotView struct {
	Card       string `json:"card"`
	Clued      bool   `json:"clued,omitempty"`
	Play       bool   `json:"play,omitempty"`
	Save       bool   `json:"save,omitempty"`
	Trash      bool   `json:"trash,omitempty"`
	Candidates int    `json:"candidates"`
}

// Marks is the short flag string shown next to a card, e.g. "c+p".
func (sv SlotView) Marks() string {
	m := ""
	if sv.Clued {
		m += "c"
	}
	switch {
	case sv.Play:
		m += "+p"
	case sv.Save:
		m += "+s"
	case sv.Trash:
		m += "+t"
	}
	return m
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Preset string `json:"preset,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
}
