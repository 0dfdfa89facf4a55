package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventDeal
	EventDraw
	EventPileEmpty
	EventClue
	EventPlay
	EventMisplay
	EventDiscard
	EventExhausted
	EventDeduction
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventDeal:
		return "Deal"
	case EventDraw:
		return "Draw"
	case EventPileEmpty:
		return "PileEmpty"
	case EventClue:
		return "Clue"
	case EventPlay:
		return "Play"
	case EventMisplay:
		return "Misplay"
	case EventDiscard:
		return "Discard"
	case EventExhausted:
		return "Exhausted"
	case EventDeduction:
		return "Deduction"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn counter when the event happened (0-based)
	Player  int       // acting player, -1 for table events
	Type    EventType // event type
	Card    string    // card identity (if applicable), e.g. "RED-3"
	Details string    // human-readable detail string
}
