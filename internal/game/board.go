package game

// Board holds the five play stacks and the public card accounting.
type Board struct {
	tops      [NumSuits]Rank
	remaining [NumIdentities]int

	// eventuallyPlayable starts as the full deck and only shrinks, by one
	// identity each time that identity is played.
	eventuallyPlayable CardSet
}

// NewBoard seeds the remaining counts from the real pile composition.
func NewBoard(pile [NumIdentities]int) *Board {
	b := &Board{remaining: pile}
	comp := Composition()
	for i, n := range comp {
		if n > 0 {
			b.eventuallyPlayable[i] = true
		}
	}
	return b
}

// Top returns the highest rank played on suit (RankNone for an empty stack).
func (b *Board) Top(suit Suit) Rank {
	return b.tops[suit]
}

// Remaining returns how many copies of c have not been played or discarded.
func (b *Board) Remaining(c Card) int {
	return b.remaining[c.Index()]
}

// EventuallyPlayable reports whether c has not been played yet.
func (b *Board) EventuallyPlayable(c Card) bool {
	return b.eventuallyPlayable.Has(c)
}

// TryPlay puts c on its stack if it is the next rank.
func (b *Board) TryPlay(c Card) bool {
	if c.Rank != b.tops[c.Suit]+1 {
		return false
	}
	b.tops[c.Suit]++
	b.eventuallyPlayable.Remove(c)
	return true
}

// Remove accounts for one copy of c leaving play. It reports whether that was
// the last copy.
func (b *Board) Remove(c Card) (exhausted bool) {
	i := c.Index()
	if b.remaining[i] == 0 {
		panic(contractf("Board.Remove", "no copies of %s remain", c))
	}
	b.remaining[i]--
	return b.remaining[i] == 0
}

// OneAway is the set of cards that would extend a stack right now.
func (b *Board) OneAway() CardSet {
	var set CardSet
	for _, s := range Suits {
		if b.tops[s] < RankFive {
			set.Add(NewCard(s, b.tops[s]+1))
		}
	}
	return set
}

// MinOneAway is the smallest rank that is playable on some stack, or RankNone
// when every stack is complete.
func (b *Board) MinOneAway() Rank {
	lowest := RankNone
	for _, s := range Suits {
		next := b.tops[s] + 1
		if next > RankFive {
			continue
		}
		if lowest == RankNone || next < lowest {
			lowest = next
		}
	}
	return lowest
}

// CanStillReach reports whether rank could still be played on suit: the stack
// is below rank and every intermediate rank has a copy left.
func (b *Board) CanStillReach(suit Suit, rank Rank) bool {
	if b.tops[suit] >= rank {
		return false
	}
	for r := b.tops[suit] + 1; r < rank; r++ {
		if b.remaining[NewCard(suit, r).Index()] == 0 {
			return false
		}
	}
	return true
}

// Score is the total number of cards on the stacks.
func (b *Board) Score() int {
	score := 0
	for _, top := range b.tops {
		score += int(top)
	}
	return score
}
