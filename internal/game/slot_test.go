package game

import "testing"

// slotOnly returns a slot holding card whose possibilities are limited to ids,
// each at its full composition weight.
func slotOnly(t *testing.T, card string, ids ...string) *Slot {
	t.Helper()
	s := newSlot(0, mustCard(t, card))
	comp := Composition()
	s.possible = [NumIdentities]int{}
	for _, id := range ids {
		i := mustCard(t, id).Index()
		s.possible[i] = comp[i]
	}
	return s
}

func TestNewSlotStartsFromComposition(t *testing.T) {
	s := newSlot(2, mustCard(t, "RED-3"))
	if s.Count() != NumIdentities {
		t.Fatalf("Expected %d candidates, got %d", NumIdentities, s.Count())
	}
	if s.Possible(mustCard(t, "BLU-1")) != 3 || s.Possible(mustCard(t, "BLU-5")) != 1 {
		t.Error("Expected weights from the deck composition")
	}
	if s.Owner() != 2 {
		t.Errorf("Expected owner 2, got %d", s.Owner())
	}
}

func TestObserveSeenCardEliminatesAtZero(t *testing.T) {
	s := newSlot(0, mustCard(t, "RED-3"))
	g2 := mustCard(t, "GRN-2")
	s.ObserveSeenCard(g2)
	if s.Possible(g2) != 1 {
		t.Fatalf("Expected weight 1, got %d", s.Possible(g2))
	}
	s.ObserveSeenCard(g2)
	if s.Possible(g2) != 0 || s.Count() != NumIdentities-1 {
		t.Fatalf("Expected GRN-2 eliminated, count %d", s.Count())
	}
	// A further sighting of an eliminated identity changes nothing.
	s.ObserveSeenCard(g2)
	if s.Possible(g2) != 0 || s.Count() != NumIdentities-1 {
		t.Error("Expected no change for an eliminated identity")
	}
}

func TestEliminateIsIdempotent(t *testing.T) {
	a := newSlot(0, mustCard(t, "RED-3"))
	b := newSlot(0, mustCard(t, "RED-3"))
	w1 := mustCard(t, "WHI-1")
	a.Eliminate(w1)
	b.Eliminate(w1)
	b.Eliminate(w1)
	if a.possible != b.possible {
		t.Error("Eliminating twice should equal eliminating once")
	}
	if b.Possible(w1) != 0 {
		t.Error("Expected WHI-1 eliminated")
	}
}

func TestEliminateReportsDeterminationOnce(t *testing.T) {
	s := slotOnly(t, "RED-5", "RED-5", "BLU-5", "GRN-5")
	if s.Eliminate(mustCard(t, "BLU-5")) {
		t.Fatal("Two identities remain")
	}
	if !s.Eliminate(mustCard(t, "GRN-5")) {
		t.Fatal("Expected the slot to become determined")
	}
	if s.Eliminate(mustCard(t, "GRN-5")) {
		t.Error("Determination is only reported once")
	}
	known, ok := s.Known()
	if !ok || known != mustCard(t, "RED-5") || !s.Determined() {
		t.Errorf("Expected RED-5 determined, got %s %v", known, ok)
	}
}

func TestReceiveClueMissDoesNotNarrow(t *testing.T) {
	b := NewBoard(Composition())
	s := newSlot(0, mustCard(t, "RED-3"))
	class := s.ReceiveClue(0, 0, RankFeature(RankOne), b, true)
	if class != ClassNone {
		t.Errorf("Expected NONE, got %s", class)
	}
	if s.Clued() || s.Count() != NumIdentities {
		t.Error("A miss must leave the slot untouched")
	}
}

func TestReceiveClueHitNarrows(t *testing.T) {
	b := NewBoard(Composition())
	s := newSlot(0, mustCard(t, "RED-3"))
	s.ReceiveClue(1, 0, SuitFeature(SuitRed), b, true)
	if !s.Clued() {
		t.Fatal("Expected clued")
	}
	if s.Count() != MaxRank {
		t.Fatalf("Expected 5 red candidates, got %v", s.Candidates())
	}
	for _, c := range s.Candidates() {
		if c.Suit != SuitRed {
			t.Errorf("Unexpected candidate %s", c)
		}
	}
}

func TestReceiveClueRejectsEmptyFeature(t *testing.T) {
	b := NewBoard(Composition())
	s := newSlot(0, mustCard(t, "RED-3"))
	expectContract(t, func() { s.ReceiveClue(0, 0, Feature{}, b, true) })
}

func TestClueClassification(t *testing.T) {
	tests := []struct {
		name       string
		card       string
		feature    Feature
		position   int
		chop       int
		firstTouch bool
		setup      func(b *Board)
		want       ClueClass
	}{
		{name: "rank equal to min one-away plays", card: "RED-1", feature: RankFeature(RankOne), want: ClassPlay, firstTouch: true},
		{name: "rank below min one-away is trash", card: "RED-1", feature: RankFeature(RankOne), want: ClassTrash, firstTouch: true,
			setup: func(b *Board) {
				for _, s := range Suits {
					b.tops[s] = RankOne
				}
			}},
		{name: "rank above min on chop saves", card: "RED-4", feature: RankFeature(RankFour), position: 0, chop: 0, want: ClassSave, firstTouch: true},
		{name: "unreachable rank on chop is not a save", card: "RED-3", feature: RankFeature(RankThree), position: 0, chop: 0, want: ClassPlay, firstTouch: true,
			setup: func(b *Board) {
				for _, s := range Suits {
					b.remaining[NewCard(s, RankTwo).Index()] = 0
				}
			}},
		{name: "rank above min off chop plays on first touch", card: "RED-4", feature: RankFeature(RankFour), position: 2, chop: 0, want: ClassPlay, firstTouch: true},
		{name: "rank above min off chop splashes later", card: "RED-4", feature: RankFeature(RankFour), position: 2, chop: 0, want: ClassSplash},
		{name: "full board makes rank trash", card: "RED-4", feature: RankFeature(RankFour), want: ClassTrash, firstTouch: true,
			setup: func(b *Board) {
				for _, s := range Suits {
					b.tops[s] = RankFive
				}
			}},
		{name: "suit plays on first touch", card: "BLU-2", feature: SuitFeature(SuitBlue), want: ClassPlay, firstTouch: true},
		{name: "suit splashes later", card: "BLU-2", feature: SuitFeature(SuitBlue), want: ClassSplash},
		{name: "suit on chop never saves", card: "BLU-4", feature: SuitFeature(SuitBlue), position: 0, chop: 0, want: ClassPlay, firstTouch: true},
		{name: "maxed suit is trash", card: "BLU-2", feature: SuitFeature(SuitBlue), want: ClassTrash, firstTouch: true,
			setup: func(b *Board) { b.tops[SuitBlue] = RankFive }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(Composition())
			if tt.setup != nil {
				tt.setup(b)
			}
			s := newSlot(0, mustCard(t, tt.card))
			got := s.ReceiveClue(tt.position, tt.chop, tt.feature, b, tt.firstTouch)
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAllInAndIntersects(t *testing.T) {
	var oneAway CardSet
	oneAway.Add(mustCard(t, "RED-1"))
	oneAway.Add(mustCard(t, "BLU-1"))

	s := slotOnly(t, "RED-1", "RED-1", "BLU-1")
	if !s.AllIn(&oneAway) {
		t.Error("Expected every candidate one-away")
	}
	s = slotOnly(t, "RED-1", "RED-1", "BLU-2")
	if s.AllIn(&oneAway) {
		t.Error("BLU-2 is not one-away")
	}
	if !s.Intersects(&oneAway) {
		t.Error("Expected RED-1 to intersect")
	}
	empty := slotOnly(t, "RED-1")
	if empty.AllIn(&oneAway) {
		t.Error("An empty slot is never all in")
	}
}
