package game

import "fmt"

// --- Enums ---

type Outcome int

const (
	OutcomeActive Outcome = iota
	OutcomeMaxTurns
	OutcomeStruckOut
	OutcomeBottomedOut
	OutcomeVictory
)

// Outcomes lists the terminal outcomes in report order.
var Outcomes = []Outcome{OutcomeMaxTurns, OutcomeStruckOut, OutcomeBottomedOut, OutcomeVictory}

func (o Outcome) String() string {
	switch o {
	case OutcomeActive:
		return "Active"
	case OutcomeMaxTurns:
		return "MaxTurnsReached"
	case OutcomeStruckOut:
		return "StruckOut"
	case OutcomeBottomedOut:
		return "BottomedOut"
	case OutcomeVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Terminal reports whether o ends the game.
func (o Outcome) Terminal() bool {
	return o != OutcomeActive
}

// ClueClass is how a receiver interprets one touched card of a clue.
type ClueClass int

const (
	ClassNone ClueClass = iota
	ClassPlay
	ClassSave
	ClassTrash
	ClassSplash
)

func (c ClueClass) String() string {
	switch c {
	case ClassPlay:
		return "PLAY"
	case ClassSave:
		return "SAVE"
	case ClassTrash:
		return "TRASH"
	case ClassSplash:
		return "SPLASH"
	default:
		return "NONE"
	}
}

// --- Clue feature ---

type featureKind uint8

const (
	featureInvalid featureKind = iota
	featureSuit
	featureRank
)

// Feature is what a clue names: exactly one suit or exactly one rank. The zero
// value names nothing and is rejected by the engine.
type Feature struct {
	kind featureKind
	suit Suit
	rank Rank
}

// SuitFeature builds a color clue.
func SuitFeature(s Suit) Feature {
	if !s.Valid() {
		panic(contractf("SuitFeature", "invalid suit %d", s))
	}
	return Feature{kind: featureSuit, suit: s}
}

// RankFeature builds a number clue.
func RankFeature(r Rank) Feature {
	if r < RankOne || r > RankFive {
		panic(contractf("RankFeature", "invalid rank %d", r))
	}
	return Feature{kind: featureRank, rank: r}
}

// Valid reports whether f names a suit or a rank.
func (f Feature) Valid() bool { return f.kind != featureInvalid }

// Suit returns the clued suit, if this is a color clue.
func (f Feature) Suit() (Suit, bool) { return f.suit, f.kind == featureSuit }

// Rank returns the clued rank, if this is a number clue.
func (f Feature) Rank() (Rank, bool) { return f.rank, f.kind == featureRank }

// Matches reports whether card c is touched by the clue.
func (f Feature) Matches(c Card) bool {
	switch f.kind {
	case featureSuit:
		return c.Suit == f.suit
	case featureRank:
		return c.Rank == f.rank
	default:
		return false
	}
}

func (f Feature) String() string {
	switch f.kind {
	case featureSuit:
		return f.suit.String()
	case featureRank:
		return fmt.Sprintf("%d", f.rank)
	default:
		return "<none>"
	}
}

// --- Actions ---

type ActionKind int

const (
	ActionPlay ActionKind = iota
	ActionDiscard
	ActionClue
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlay:
		return "Play"
	case ActionDiscard:
		return "Discard"
	case ActionClue:
		return "Clue"
	default:
		return "Unknown"
	}
}

// Action is one turn's choice. Index is the hand position for play/discard;
// Target and Feature are used by clues.
type Action struct {
	Kind    ActionKind
	Index   int
	Target  int
	Feature Feature
}

// PlayAction plays the card at hand position idx.
func PlayAction(idx int) Action { return Action{Kind: ActionPlay, Index: idx} }

// DiscardAction discards the card at hand position idx.
func DiscardAction(idx int) Action { return Action{Kind: ActionDiscard, Index: idx} }

// ClueAction clues player target with f.
func ClueAction(target int, f Feature) Action {
	return Action{Kind: ActionClue, Target: target, Feature: f}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlay:
		return fmt.Sprintf("play slot %d", a.Index)
	case ActionDiscard:
		return fmt.Sprintf("discard slot %d", a.Index)
	case ActionClue:
		return fmt.Sprintf("clue P%d %s", a.Target, a.Feature)
	default:
		return "unknown action"
	}
}

// --- Result ---

// GameResult is the summary of one finished game handed to collaborators.
type GameResult struct {
	Seed        int64   `json:"seed"`
	Score       int     `json:"score"`
	Outcome     Outcome `json:"-"`
	OutcomeName string  `json:"outcome"`
	Turns       int     `json:"turns"`
	StrikesUsed int     `json:"strikes_used"`
	CluesGiven  int     `json:"clues_given"`
	Discards    int     `json:"discards"`
	Plays       int     `json:"plays"`
	Misplays    int     `json:"misplays"`
}
