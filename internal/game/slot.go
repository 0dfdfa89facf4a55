package game

import "strings"

// Slot is one player's belief about one of their own hand positions. It holds
// the physical card (used only to answer clues) and a weighted multiset of the
// identities still consistent with public information. A weight of zero means
// the identity is eliminated.
//
// The slot does not point back at its owner; the owner is identified by seat
// and the position is the slot's index in that player's hand.
type Slot struct {
	card     Card
	owner    int
	possible [NumIdentities]int

	clued bool
	save  bool
	play  bool
	trash bool

	// determined is set once the slot is narrowed to a single identity and
	// that fact has been handed to the owner's self-exhaust queue.
	determined bool
}

// newSlot initializes a slot with the full canonical composition: nothing has
// been observed yet.
func newSlot(owner int, card Card) *Slot {
	return &Slot{card: card, owner: owner, possible: Composition()}
}

// Card is the physical card. A player's own decisions must never read it.
func (s *Slot) Card() Card { return s.card }

// Owner is the seat holding this slot.
func (s *Slot) Owner() int { return s.owner }

func (s *Slot) Clued() bool { return s.clued }
func (s *Slot) Save() bool  { return s.save }
func (s *Slot) Play() bool  { return s.play }
func (s *Slot) Trash() bool { return s.trash }

// Determined reports whether the slot has been narrowed to one identity.
func (s *Slot) Determined() bool { return s.determined }

// Possible returns the remaining weight of identity c.
func (s *Slot) Possible(c Card) int {
	return s.possible[c.Index()]
}

// Count returns the number of distinct identities still possible.
func (s *Slot) Count() int {
	n := 0
	for _, w := range s.possible {
		if w > 0 {
			n++
		}
	}
	return n
}

// Candidates lists the identities still possible in index order.
func (s *Slot) Candidates() []Card {
	var out []Card
	for i, w := range s.possible {
		if w > 0 {
			out = append(out, CardAt(i))
		}
	}
	return out
}

// Known returns the identity when exactly one remains.
func (s *Slot) Known() (Card, bool) {
	found := -1
	for i, w := range s.possible {
		if w == 0 {
			continue
		}
		if found >= 0 {
			return Card{}, false
		}
		found = i
	}
	if found < 0 {
		return Card{}, false
	}
	return CardAt(found), true
}

// AllIn reports whether every remaining identity is in set. An empty slot is
// never "all in".
func (s *Slot) AllIn(set *CardSet) bool {
	seen := false
	for i, w := range s.possible {
		if w == 0 {
			continue
		}
		if !set[i] {
			return false
		}
		seen = true
	}
	return seen
}

// Intersects reports whether some remaining identity is in set.
func (s *Slot) Intersects(set *CardSet) bool {
	for i, w := range s.possible {
		if w > 0 && set[i] {
			return true
		}
	}
	return false
}

// ObserveSeenCard accounts for one copy of c seen in another player's hand.
// An identity that is already eliminated is left alone. It reports whether
// the slot just became determined.
func (s *Slot) ObserveSeenCard(c Card) bool {
	i := c.Index()
	if s.possible[i] == 0 {
		return false
	}
	s.possible[i]--
	if s.possible[i] > 0 {
		return false
	}
	return s.Eliminate(c)
}

// Eliminate removes c entirely. Calling it again is a no-op. It reports
// whether the slot just became determined (exactly one identity left, for the
// first time).
func (s *Slot) Eliminate(c Card) bool {
	s.possible[c.Index()] = 0
	return s.settle()
}

func (s *Slot) settle() bool {
	if s.determined {
		return false
	}
	if _, ok := s.Known(); !ok {
		return false
	}
	s.determined = true
	return true
}

// ReceiveClue applies a clue to this slot and classifies it. position is the
// slot's hand index and chop the hand's chop before the clue was applied.
// firstTouch is true when no earlier slot of the same hand was touched by this
// clue.
//
// A miss returns ClassNone and deliberately does not narrow the slot.
func (s *Slot) ReceiveClue(position, chop int, f Feature, b *Board, firstTouch bool) ClueClass {
	if !f.Valid() {
		panic(contractf("Slot.ReceiveClue", "clue names neither suit nor rank"))
	}
	if !f.Matches(s.card) {
		return ClassNone
	}
	for i, w := range s.possible {
		if w > 0 && !f.Matches(CardAt(i)) {
			s.possible[i] = 0
		}
	}
	s.clued = true
	return s.classify(position, chop, f, b, firstTouch)
}

func (s *Slot) classify(position, chop int, f Feature, b *Board, firstTouch bool) ClueClass {
	if suit, ok := f.Suit(); ok {
		if b.Top(suit) == RankFive {
			return ClassTrash
		}
		if firstTouch {
			return ClassPlay
		}
		return ClassSplash
	}

	rank, _ := f.Rank()
	lowest := b.MinOneAway()
	switch {
	case lowest == RankNone || rank < lowest:
		return ClassTrash
	case rank == lowest:
		return ClassPlay
	case position == chop && s.reachable(rank, b):
		return ClassSave
	case firstTouch:
		return ClassPlay
	default:
		return ClassSplash
	}
}

// reachable reports whether some suit this slot may be could still get rank
// played later.
func (s *Slot) reachable(rank Rank, b *Board) bool {
	for _, suit := range Suits {
		if s.possible[NewCard(suit, rank).Index()] == 0 {
			continue
		}
		if b.CanStillReach(suit, rank) {
			return true
		}
	}
	return false
}

func (s *Slot) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(s.card.String())
	if s.clued {
		sb.WriteString(" clued")
	}
	sb.WriteString(" possibly:")
	if s.Count() >= 10 {
		sb.WriteString("unk")
	} else {
		for i, c := range s.Candidates() {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(c.String())
		}
	}
	sb.WriteString(">")
	return sb.String()
}
