package game

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	NumSuits      = 5
	MaxRank       = 5
	NumIdentities = NumSuits * MaxRank
	MaxScore      = NumSuits * MaxRank
)

// Suit is one of the five card colors.
type Suit int

const (
	SuitBlue Suit = iota
	SuitRed
	SuitGreen
	SuitWhite
	SuitYellow
)

// Suits lists every suit in board order.
var Suits = [NumSuits]Suit{SuitBlue, SuitRed, SuitGreen, SuitWhite, SuitYellow}

func (s Suit) String() string {
	switch s {
	case SuitBlue:
		return "BLU"
	case SuitRed:
		return "RED"
	case SuitGreen:
		return "GRN"
	case SuitWhite:
		return "WHI"
	case SuitYellow:
		return "YEL"
	default:
		return "???"
	}
}

// Valid reports whether s is one of the five suits.
func (s Suit) Valid() bool {
	return s >= SuitBlue && s <= SuitYellow
}

// ParseSuit parses the three-letter suit name.
func ParseSuit(name string) (Suit, error) {
	for _, s := range Suits {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// Rank is the card number. RankNone marks the empty base of a stack and never
// appears on a card.
type Rank int

const (
	RankNone Rank = iota
	RankOne
	RankTwo
	RankThree
	RankFour
	RankFive
)

// copiesPerRank is the number of physical copies of each rank in one suit.
var copiesPerRank = [MaxRank + 1]int{0, 3, 2, 2, 2, 1}

// Card is an immutable (suit, rank) identity.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard builds a card identity. Rank 0 is not a card.
func NewCard(suit Suit, rank Rank) Card {
	if !suit.Valid() || rank < RankOne || rank > RankFive {
		panic(contractf("NewCard", "invalid identity suit=%d rank=%d", suit, rank))
	}
	return Card{Suit: suit, Rank: rank}
}

// Index returns the dense identity index in [0, NumIdentities).
func (c Card) Index() int {
	return int(c.Suit)*MaxRank + int(c.Rank) - 1
}

// CardAt is the inverse of Card.Index.
func CardAt(i int) Card {
	return Card{Suit: Suit(i / MaxRank), Rank: Rank(i%MaxRank + 1)}
}

func (c Card) String() string {
	return fmt.Sprintf("%s-%d", c.Suit, c.Rank)
}

// ParseCard parses the "BLU-1" form produced by Card.String.
func ParseCard(s string) (Card, error) {
	suitPart, rankPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Card{}, fmt.Errorf("parse card %q: want SUIT-RANK", s)
	}
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return Card{}, fmt.Errorf("parse card %q: %w", s, err)
	}
	n, err := strconv.Atoi(rankPart)
	if err != nil || n < int(RankOne) || n > int(RankFive) {
		return Card{}, fmt.Errorf("parse card %q: rank must be 1-5", s)
	}
	return Card{Suit: suit, Rank: Rank(n)}, nil
}

// UnmarshalYAML lets presets name cards as "RED-3".
func (c *Card) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the "RED-3" form.
func (c Card) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// MarshalText writes the "RED-3" form, so JSON carries cards as strings.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Composition returns the canonical number of copies of every identity.
func Composition() [NumIdentities]int {
	var comp [NumIdentities]int
	for _, s := range Suits {
		for r := RankOne; r <= RankFive; r++ {
			comp[NewCard(s, r).Index()] = copiesPerRank[r]
		}
	}
	return comp
}

// NormalDeck expands the canonical composition into a 50-card list.
func NormalDeck() []Card {
	var cards []Card
	comp := Composition()
	for i, n := range comp {
		for j := 0; j < n; j++ {
			cards = append(cards, CardAt(i))
		}
	}
	return cards
}

// CardSet is a set of identities keyed by dense index. Queries take the set
// by value so they work on results such as Board.OneAway().
type CardSet [NumIdentities]bool

// Add inserts c.
func (s *CardSet) Add(c Card) { s[c.Index()] = true }

// Remove deletes c.
func (s *CardSet) Remove(c Card) { s[c.Index()] = false }

// Has reports whether c is in the set.
func (s CardSet) Has(c Card) bool { return s[c.Index()] }

// Len counts members.
func (s CardSet) Len() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

// Cards lists members in index order.
func (s CardSet) Cards() []Card {
	var out []Card
	for i, ok := range s {
		if ok {
			out = append(out, CardAt(i))
		}
	}
	return out
}
