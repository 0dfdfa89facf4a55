package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/hanabi/internal/log"
)

// mustCard parses a "RED-3" style identity or fails the test.
func mustCard(t *testing.T, s string) Card {
	t.Helper()
	c, err := ParseCard(s)
	if err != nil {
		t.Fatalf("bad card %q: %v", s, err)
	}
	return c
}

// cards parses a list of identities.
func cards(t *testing.T, names ...string) []Card {
	t.Helper()
	out := make([]Card, len(names))
	for i, n := range names {
		out[i] = mustCard(t, n)
	}
	return out
}

// stackDeal builds a full 50-card pile that deals hands (seat order, oldest
// card first), then draws next, then the rest of the deck in index order.
func stackDeal(t *testing.T, hands [][]Card, next ...Card) []Card {
	t.Helper()
	comp := Composition()
	var seq []Card
	take := func(c Card) {
		if comp[c.Index()] == 0 {
			t.Fatalf("no copies of %s left to stack", c)
		}
		comp[c.Index()]--
		seq = append(seq, c)
	}
	for i := range hands[0] {
		for _, h := range hands {
			take(h[i])
		}
	}
	for _, c := range next {
		take(c)
	}
	for i, n := range comp {
		for ; n > 0; n-- {
			seq = append(seq, CardAt(i))
		}
	}

	pile := make([]Card, len(seq))
	for i, c := range seq {
		pile[len(seq)-1-i] = c
	}
	return pile
}

// stackedGame starts a four-player game whose opening hands are the given
// identities.
func stackedGame(t *testing.T, hands ...[]string) (*Game, *log.MemoryLogger) {
	t.Helper()
	parsed := make([][]Card, len(hands))
	for i, h := range hands {
		parsed[i] = cards(t, h...)
	}
	logger := log.NewMemoryLogger()
	g, err := New(Config{
		Players:  len(hands),
		HandSize: len(hands[0]),
		Pile:     stackDeal(t, parsed),
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, logger
}

// seededGame starts a default game with the given seed.
func seededGame(t *testing.T, seed int64) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Logger = logger
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, logger
}

// expectContract runs fn and fails unless it panics with a *ContractError.
func expectContract(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("Expected a contract violation panic")
		}
		err, ok := r.(error)
		var ce *ContractError
		if !ok || !errors.As(err, &ce) {
			t.Fatalf("Expected *ContractError panic, got %T: %v", r, r)
		}
	}()
	fn()
}

// checkInvariants verifies the public accounting and every player's
// knowledge against the physical cards.
func checkInvariants(t *testing.T, g *Game) {
	t.Helper()
	if g.tokens < 0 || g.tokens > MaxClueTokens {
		t.Fatalf("clue tokens out of range: %d", g.tokens)
	}
	if g.strikes < 0 || g.strikes > MaxStrikes {
		t.Fatalf("strikes out of range: %d", g.strikes)
	}
	if g.score < 0 || g.score > MaxScore {
		t.Fatalf("score out of range: %d", g.score)
	}
	if g.score != g.board.Score() {
		t.Fatalf("score %d does not match stacks %d", g.score, g.board.Score())
	}
	for i := 0; i < NumIdentities; i++ {
		c := CardAt(i)
		n := g.board.Remaining(c)
		if n < 0 {
			t.Fatalf("remaining count of %s is negative", c)
		}
		if n > 0 {
			continue
		}
		for _, p := range g.players {
			for pos, s := range p.hand {
				if s.Possible(c) > 0 {
					t.Fatalf("P%d slot %d still lists exhausted %s", p.ID, pos, c)
				}
			}
		}
	}
	for _, p := range g.players {
		for pos, s := range p.hand {
			if s.Possible(s.Card()) == 0 {
				t.Fatalf("P%d slot %d ruled out its own card %s: %s", p.ID, pos, s.Card(), s)
			}
			// Copies in the owner's hand are only counted once the owner
			// has deduced them, so they bound the weight from below.
			unseen := 0
			for _, o := range p.hand {
				if o.Card() == s.Card() && (o == s || !o.Determined()) {
					unseen++
				}
			}
			if s.Possible(s.Card()) < unseen {
				t.Fatalf("P%d slot %d weighs %s at %d but %d copies are unseen by the owner",
					p.ID, pos, s.Card(), s.Possible(s.Card()), unseen)
			}
		}
	}
}
