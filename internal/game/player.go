package game

// Player is one seat at the table. Hand position 0 is the oldest card; new
// cards are appended on the right.
type Player struct {
	ID      int
	HasPlay bool // some card in hand is marked play by a clue

	hand     []*Slot
	pending  []*Slot // determined slots whose identity siblings have not yet absorbed
	strategy Strategy
}

// Deduction records a slot the owner has narrowed to a single identity.
type Deduction struct {
	Position int
	Card     Card
}

func newPlayer(id int, strategy Strategy) *Player {
	return &Player{ID: id, strategy: strategy}
}

// Hand returns the player's slots, oldest first. Callers must not modify it.
func (p *Player) Hand() []*Slot {
	return p.hand
}

// HandSize returns the number of cards held.
func (p *Player) HandSize() int {
	return len(p.hand)
}

// Strategy returns the decision parameters bound to this seat.
func (p *Player) Strategy() Strategy {
	return p.strategy
}

// Chop is the oldest position without a clue, or -1 if every card is clued.
func (p *Player) Chop() int {
	for i, s := range p.hand {
		if !s.clued {
			return i
		}
	}
	return -1
}

func (p *Player) indexOf(s *Slot) int {
	for i, h := range p.hand {
		if h == s {
			return i
		}
	}
	return -1
}

func (p *Player) queue(s *Slot) {
	p.pending = append(p.pending, s)
}

// seeDraw is called when another player draws c.
func (p *Player) seeDraw(c Card) {
	for _, s := range p.hand {
		if s.ObserveSeenCard(c) {
			p.queue(s)
		}
	}
}

// exhaust removes c from every slot once its last copy has left play.
func (p *Player) exhaust(c Card) {
	for _, s := range p.hand {
		if s.Eliminate(c) {
			p.queue(s)
		}
	}
}

// take puts a freshly drawn card on the right of the hand. The new slot
// starts from the full composition and is caught up on what is already
// public: the cards in the other hands, identities with no copies left, and
// identities the owner has already pinned down in sibling slots.
func (p *Player) take(c Card, players []*Player, b *Board) {
	s := newSlot(p.ID, c)
	for _, o := range players {
		if o.ID == p.ID {
			continue
		}
		for _, seen := range o.hand {
			s.ObserveSeenCard(seen.card)
		}
	}
	for i := 0; i < NumIdentities; i++ {
		if b.remaining[i] == 0 {
			s.Eliminate(CardAt(i))
		}
	}
	for _, sib := range p.hand {
		if !sib.determined {
			continue
		}
		if known, ok := sib.Known(); ok {
			s.ObserveSeenCard(known)
		}
	}
	p.hand = append(p.hand, s)
	if s.determined || s.settle() {
		p.queue(s)
	}
}

// pop removes the card at idx from the hand.
func (p *Player) pop(idx int) Card {
	if idx < 0 || idx >= len(p.hand) {
		panic(contractf("Player.pop", "player %d has no card at position %d (hand size %d)", p.ID, idx, len(p.hand)))
	}
	s := p.hand[idx]
	p.hand = append(p.hand[:idx], p.hand[idx+1:]...)
	p.refreshHasPlay()
	return s.card
}

func (p *Player) refreshHasPlay() {
	p.HasPlay = false
	for _, s := range p.hand {
		if s.play {
			p.HasPlay = true
			return
		}
	}
}

// receiveClue applies a broadcast clue. Only the target updates; the giver
// learns nothing new. Every touched slot is classified against the chop as it
// stood before the clue, then the classes are resolved for the whole hand.
func (p *Player) receiveClue(from, to int, f Feature, b *Board) []ClueClass {
	if from == p.ID || to != p.ID {
		return nil
	}
	chop := p.Chop()
	classes := make([]ClueClass, len(p.hand))
	firstTouch := true
	saved := -1
	for i, s := range p.hand {
		classes[i] = s.ReceiveClue(i, chop, f, b, firstTouch)
		if classes[i] == ClassNone {
			continue
		}
		firstTouch = false
		if classes[i] == ClassSave && saved < 0 {
			saved = i
		}
		if s.settle() {
			p.queue(s)
		}
	}

	if saved >= 0 {
		for i, c := range classes {
			if i != saved && c != ClassNone {
				classes[i] = ClassSplash
			}
		}
		p.hand[saved].save = true
		return classes
	}
	for i, c := range classes {
		switch c {
		case ClassPlay:
			p.hand[i].play = true
			p.HasPlay = true
		case ClassTrash:
			p.hand[i].trash = true
		}
	}
	return classes
}

// drainSelfExhausts works through the pending queue until it is empty. When
// a slot is pinned to identity X, each sibling accounts for that copy of X as
// if it had been seen elsewhere, which can pin further siblings. Entries are
// processed in the order they were queued.
func (p *Player) drainSelfExhausts() []Deduction {
	var out []Deduction
	for len(p.pending) > 0 {
		s := p.pending[0]
		p.pending = p.pending[1:]
		pos := p.indexOf(s)
		if pos < 0 {
			continue
		}
		known, ok := s.Known()
		if !ok {
			continue
		}
		out = append(out, Deduction{Position: pos, Card: known})
		for _, sib := range p.hand {
			if sib == s {
				continue
			}
			if sib.ObserveSeenCard(known) {
				p.queue(sib)
			}
		}
	}
	p.pending = p.pending[:0]
	return out
}
