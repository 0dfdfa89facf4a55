package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- NopLogger: drops everything (batch runs) ---

type NopLogger struct{}

func (NopLogger) Log(GameEvent)       {}
func (NopLogger) Events() []GameEvent { return nil }

// --- FuncLogger: forwards each event to a callback (streaming) ---

// FuncLogger keeps events in memory and hands each one to Fn as it is logged.
type FuncLogger struct {
	MemoryLogger
	Fn func(GameEvent)
}

func (l *FuncLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	if l.Fn != nil {
		l.Fn(l.MemoryLogger.LastEvent())
	}
}

// --- Formatting ---

// playerName returns "P0".."P4" for display, or "--" for table events.
func playerName(p int) string {
	if p < 0 {
		return "--"
	}
	return fmt.Sprintf("P%d", p)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %s | %s", e.Turn, playerName(e.Player), e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewDealEvent(player int, card string) GameEvent {
	return GameEvent{
		Turn:    -1,
		Player:  player,
		Type:    EventDeal,
		Card:    card,
		Details: fmt.Sprintf("%s is dealt %s", playerName(player), card),
	}
}

func NewDrawEvent(turn int, player int, card string, left int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Card:    card,
		Details: fmt.Sprintf("%s draws %s (%d left)", playerName(player), card, left),
	}
}

func NewPileEmptyEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPileEmpty,
		Details: fmt.Sprintf("draw pile empty, %s takes the last turn of the round", playerName(player)),
	}
}

func NewClueEvent(turn int, from, to int, feature string, touched int, tokens int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  from,
		Type:    EventClue,
		Details: fmt.Sprintf("%s clues %s with %s (%d touched) tokens:%d", playerName(from), playerName(to), feature, touched, tokens),
	}
}

func NewPlayEvent(turn int, player int, card string, score int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPlay,
		Card:    card,
		Details: fmt.Sprintf("%s plays %s +1 (score %d)", playerName(player), card, score),
	}
}

func NewMisplayEvent(turn int, player int, card string, strikesLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventMisplay,
		Card:    card,
		Details: fmt.Sprintf("%s plays %s strike! (%d left)", playerName(player), card, strikesLeft),
	}
}

func NewDiscardEvent(turn int, player int, card string, tokens int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDiscard,
		Card:    card,
		Details: fmt.Sprintf("%s discards %s tokens:%d", playerName(player), card, tokens),
	}
}

func NewExhaustedEvent(turn int, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventExhausted,
		Card:    card,
		Details: fmt.Sprintf("last copy of %s is gone", card),
	}
}

func NewDeductionEvent(turn int, player int, position int, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDeduction,
		Card:    card,
		Details: fmt.Sprintf("%s knows slot %d is %s", playerName(player), position, card),
	}
}

func NewGameOverEvent(turn int, outcome string, score int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventGameOver,
		Details: fmt.Sprintf("game over: %s, final score %d", outcome, score),
	}
}
