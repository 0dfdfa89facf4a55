package game

import (
	"testing"

	"github.com/peterkuimelis/hanabi/internal/log"
)

// TestSelfPlayOnFirstTurn: a hand known to be all 1s is played before
// anything else is considered.
func TestSelfPlayOnFirstTurn(t *testing.T) {
	g, logger := stackedGame(t,
		[]string{"BLU-1", "RED-1", "GRN-1", "WHI-1"},
		[]string{"BLU-2", "RED-2", "GRN-2", "WHI-2"},
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
	)
	g.clue(3, 0, RankFeature(RankOne))

	a := g.Player(0).Decide(g)
	if a != PlayAction(3) {
		t.Fatalf("Expected play of the newest slot, got %s", a)
	}

	g.Step()
	plays := logger.EventsOfType(log.EventPlay)
	if len(plays) != 1 || plays[0].Card != "WHI-1" {
		t.Fatalf("Expected WHI-1 to be played, got %v", plays)
	}
	if g.Score() != 1 {
		t.Errorf("Expected score 1, got %d", g.Score())
	}
	if len(logger.EventsOfType(log.EventDiscard)) != 0 {
		t.Error("Expected no discard")
	}
}

// TestNoTokensSkipsClues: with no clue tokens the save and play-clue scans are
// skipped and the chop is discarded.
func TestNoTokensSkipsClues(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"RED-1", "BLU-2", "GRN-2", "YEL-5"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "WHI-2"},
	)

	g.tokens = 7
	a := g.Player(0).Decide(g)
	if a != ClueAction(1, SuitFeature(SuitRed)) {
		t.Fatalf("With tokens, expected a red clue to P1, got %s", a)
	}

	g.tokens = 0
	a = g.Player(0).Decide(g)
	if a != DiscardAction(0) {
		t.Fatalf("Without tokens, expected discard of the chop, got %s", a)
	}
}

func TestFallbackAtFullTokensPlaysChop(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"BLU-2", "RED-2", "GRN-2", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "GRN-2"},
	)
	if a := g.Player(0).Decide(g); a != PlayAction(0) {
		t.Fatalf("At 8 tokens with nothing to clue, expected play of the chop, got %s", a)
	}

	g.tokens = 7
	if a := g.Player(0).Decide(g); a != DiscardAction(0) {
		t.Fatalf("Expected discard of the chop, got %s", a)
	}

	for _, s := range g.Player(0).Hand() {
		s.clued = true
	}
	if a := g.Player(0).Decide(g); a != DiscardAction(3) {
		t.Fatalf("Fully clued hand discards its newest card, got %s", a)
	}
}

// TestSavesLastCopyBeforeNeighborActs: a critical card on the next player's
// chop gets a number clue this turn.
func TestSavesLastCopyBeforeNeighborActs(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"RED-5", "BLU-2", "GRN-2", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-2"},
	)
	a := g.Player(0).Decide(g)
	if a != ClueAction(1, RankFeature(RankFive)) {
		t.Fatalf("Expected a 5 clue to P1, got %s", a)
	}

	g.Step()
	chop := g.Player(1).Hand()[0]
	if !chop.Save() || !chop.Clued() {
		t.Errorf("Expected P1's RED-5 saved, got %s", chop)
	}
	if g.ClueTokens() != 7 {
		t.Errorf("Expected 7 tokens, got %d", g.ClueTokens())
	}
}

func TestSaveWaitsForLastChance(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"BLU-2", "RED-2", "GRN-2", "WHI-2"},
		[]string{"RED-5", "BLU-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-4"},
	)
	// P2 is two turns away with one card at risk: P1 can still save it.
	if a := g.Player(0).Decide(g); a.Kind == ActionClue {
		t.Fatalf("Expected no clue yet, got %s", a)
	}
	if a := g.Player(1).Decide(g); a != ClueAction(2, RankFeature(RankFive)) {
		t.Fatalf("Expected P1 to save P2's RED-5, got %s", a)
	}
}

func TestSaveSkipsNeighborWithPlay(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"RED-5", "BLU-2", "GRN-2", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-2"},
	)
	g.Player(1).HasPlay = true
	if a := g.Player(0).Decide(g); a.Kind == ActionClue {
		t.Fatalf("Expected no save for a player with a play, got %s", a)
	}
}

func TestSaveCoversAnyLastCopy(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"RED-2", "BLU-2", "GRN-2", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "GRN-2"},
	)
	// The other RED-2 is gone, so P1's chop is the last copy.
	g.board.remaining[mustCard(t, "RED-2").Index()] = 1
	if a := g.Player(0).Decide(g); a != ClueAction(1, RankFeature(RankTwo)) {
		t.Fatalf("Expected a 2 clue to P1, got %s", a)
	}
}

func TestSaveIgnoresDeadLastCopy(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"RED-1", "BLU-2", "GRN-2", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "GRN-2"},
	)
	// RED-1 is already on the stack. P1 holds the last copy, which can never
	// be played; a 1 clue would read as a play and cost a strike.
	red1 := mustCard(t, "RED-1")
	g.board.tops[SuitRed] = RankOne
	g.board.eventuallyPlayable.Remove(red1)
	g.board.remaining[red1.Index()] = 1

	if a := g.Player(0).Decide(g); a.Kind == ActionClue {
		t.Fatalf("Expected no save for a dead card, got %s", a)
	}
}

func TestPlayClueRejectsDuplicateTouch(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"RED-1", "BLU-2", "RED-1", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "GRN-2"},
	)
	if a := g.Player(0).Decide(g); a != PlayAction(0) {
		t.Fatalf("Both clues touch two RED-1, expected no clue, got %s", a)
	}
}

func TestPlayClueSkipsIdentityKnownElsewhere(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"BLU-2", "RED-1", "GRN-2", "WHI-2"},
		[]string{"RED-1", "BLU-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-2"},
	)
	if a := g.Player(0).Decide(g); a != ClueAction(1, SuitFeature(SuitRed)) {
		t.Fatalf("Expected a red clue to P1, got %s", a)
	}

	// P2 already knows their RED-1.
	known := g.Player(2).Hand()[0]
	known.possible = [NumIdentities]int{}
	known.possible[mustCard(t, "RED-1").Index()] = 1

	if a := g.Player(0).Decide(g); a != ClueAction(2, SuitFeature(SuitRed)) {
		t.Fatalf("Expected the clue to move to P2, got %s", a)
	}
}

func TestPlayClueSkipsIdentityGiverMayHold(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-3", "GRN-3", "WHI-3"},
		[]string{"BLU-2", "RED-1", "GRN-2", "WHI-2"},
		[]string{"RED-1", "BLU-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-2"},
	)
	// P0's unclued oldest card has been narrowed to RED-1 or GRN-4.
	s := g.Player(0).Hand()[0]
	s.possible = [NumIdentities]int{}
	s.possible[mustCard(t, "RED-1").Index()] = 1
	s.possible[mustCard(t, "GRN-4").Index()] = 1

	if a := g.Player(0).Decide(g); a.Kind == ActionClue {
		t.Fatalf("Expected no RED-1 clue while P0 may hold it, got %s", a)
	}

	// Too many candidates left to count as knowledge.
	for _, id := range []string{"BLU-5", "GRN-5", "WHI-5", "YEL-5"} {
		s.possible[mustCard(t, id).Index()] = 1
	}
	if a := g.Player(0).Decide(g); a != ClueAction(1, SuitFeature(SuitRed)) {
		t.Fatalf("Expected a red clue to P1, got %s", a)
	}
}

func TestPlayClueTouchPreference(t *testing.T) {
	hands := [][]string{
		{"BLU-3", "RED-2", "GRN-3", "WHI-2"},
		{"BLU-2", "RED-3", "GRN-4", "BLU-1"},
		{"RED-4", "GRN-3", "WHI-3", "WHI-4"},
		{"YEL-2", "YEL-3", "YEL-4", "RED-2"},
	}

	g, _ := stackedGame(t, hands...)
	if a := g.Player(0).Decide(g); a != ClueAction(1, SuitFeature(SuitBlue)) {
		t.Fatalf("Preferring big touches, expected blue, got %s", a)
	}

	g, _ = stackedGame(t, hands...)
	g.Player(0).strategy = Strategy{PreferBigTouches: false, MaxUncertainty: 5}
	if a := g.Player(0).Decide(g); a != ClueAction(1, RankFeature(RankOne)) {
		t.Fatalf("Preferring small touches, expected 1, got %s", a)
	}
}

func TestPlayClueLeftToRightLegality(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-2", "GRN-3", "WHI-2"},
		[]string{"BLU-1", "RED-3", "GRN-4", "BLU-2"},
		[]string{"RED-4", "GRN-3", "WHI-3", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-2"},
	)
	// Blue would touch BLU-2 as the newest card, which is not playable yet.
	if a := g.Player(0).Decide(g); a != ClueAction(1, RankFeature(RankOne)) {
		t.Fatalf("Expected a 1 clue, got %s", a)
	}
}

func TestSelfPlayOnPlayMarkedSlot(t *testing.T) {
	g, _ := stackedGame(t,
		[]string{"BLU-3", "RED-1", "GRN-3", "WHI-3"},
		[]string{"BLU-2", "RED-2", "GRN-2", "WHI-2"},
		[]string{"BLU-4", "RED-4", "GRN-4", "WHI-4"},
		[]string{"YEL-2", "YEL-3", "YEL-4", "RED-3"},
	)
	g.tokens = 0
	s := g.Player(0).Hand()[1]
	s.play = true
	s.possible = [NumIdentities]int{}
	s.possible[mustCard(t, "RED-1").Index()] = 3
	s.possible[mustCard(t, "RED-2").Index()] = 2

	if a := g.Player(0).Decide(g); a != PlayAction(1) {
		t.Fatalf("Expected the play-marked slot to be played, got %s", a)
	}

	for _, id := range []string{"BLU-2", "GRN-2", "WHI-2", "YEL-2"} {
		s.possible[mustCard(t, id).Index()] = 1
	}
	if a := g.Player(0).Decide(g); a != DiscardAction(0) {
		t.Fatalf("Six candidates is too uncertain, expected discard, got %s", a)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g1, l1 := seededGame(t, seed)
		g2, l2 := seededGame(t, seed)
		r1, _ := g1.Run(t.Context())
		r2, _ := g2.Run(t.Context())
		if r1 != r2 {
			t.Fatalf("seed %d: results differ: %+v vs %+v", seed, r1, r2)
		}
		if log.FormatAll(l1.Events()) != log.FormatAll(l2.Events()) {
			t.Fatalf("seed %d: event traces differ", seed)
		}
	}
}
