package game

import "math/rand"

// DrawPile is the shared face-down pile. The top of the pile is the last
// element (draws pop from the end).
type DrawPile struct {
	cards []Card
}

// NewDrawPile copies cards and shuffles them once with rng. A nil rng keeps
// the given order, which tests use to stack the pile.
func NewDrawPile(cards []Card, rng *rand.Rand) *DrawPile {
	p := &DrawPile{cards: append([]Card(nil), cards...)}
	if rng != nil {
		rng.Shuffle(len(p.cards), func(i, j int) {
			p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
		})
	}
	return p
}

// Draw removes and returns the top card. ok is false once the pile is empty.
func (p *DrawPile) Draw() (card Card, ok bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	card = p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return card, true
}

// Len returns the number of cards left.
func (p *DrawPile) Len() int {
	return len(p.cards)
}

// Composition counts the identities actually in the pile.
func (p *DrawPile) Composition() [NumIdentities]int {
	var comp [NumIdentities]int
	for _, c := range p.cards {
		comp[c.Index()]++
	}
	return comp
}

// MoveToBottom rearranges the pile so that the given identities are the last
// ones drawn, in the order listed (the first listed card is drawn last). Every
// requested card must be present.
func (p *DrawPile) MoveToBottom(cards ...Card) {
	bottom := make([]Card, 0, len(cards))
	rest := append([]Card(nil), p.cards...)
	for _, want := range cards {
		found := false
		for i, c := range rest {
			if c == want {
				rest = append(rest[:i], rest[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			panic(contractf("MoveToBottom", "card %s not in pile", want))
		}
		bottom = append(bottom, want)
	}
	p.cards = append(bottom, rest...)
}
