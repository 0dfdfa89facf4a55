package game

import (
	"slices"
	"sort"
)

// Strategy holds the tunable parts of the decision procedure.
type Strategy struct {
	// PreferBigTouches orders candidate play clues by the number of cards
	// they touch, most first. When false the clue touching fewer cards is
	// tried first.
	PreferBigTouches bool `yaml:"prefer_big_touches" json:"prefer_big_touches"`

	// MaxUncertainty is the largest number of distinct identities a
	// play-marked slot may have and still be played on faith.
	MaxUncertainty int `yaml:"max_uncertainty" json:"max_uncertainty"`
}

// DefaultStrategy returns the reference parameters.
func DefaultStrategy() Strategy {
	return Strategy{PreferBigTouches: true, MaxUncertainty: 5}
}

// Decide picks this player's action for the current turn. It reads the other
// players' cards and its own slot knowledge, never its own cards.
func (p *Player) Decide(g *Game) Action {
	if len(p.hand) == 0 {
		panic(contractf("Player.Decide", "player %d has no cards", p.ID))
	}

	// Bluffs and finesses are not recognized, so there is nothing to answer.

	if g.tokens > 0 {
		if a, ok := p.findSave(g); ok {
			return a
		}
		if a, ok := p.findPlayClue(g); ok {
			return a
		}
	}

	if a, ok := p.findSelfPlay(g); ok {
		return a
	}

	idx := p.Chop()
	if idx < 0 {
		idx = len(p.hand) - 1
	}
	if g.tokens < MaxClueTokens {
		return DiscardAction(idx)
	}
	return PlayAction(idx)
}

// findSave looks for a neighbor about to lose last copies off their chop.
// Neighbors are visited farthest first; dist is how many turns remain before
// that neighbor acts.
func (p *Player) findSave(g *Game) (Action, bool) {
	neighbors := g.neighbors(p.ID)
	for dist := len(neighbors); dist >= 1; dist-- {
		n := neighbors[dist-1]
		if n.HasPlay {
			continue
		}
		chop := n.Chop()
		if chop < 0 {
			continue
		}

		var atRisk [MaxRank + 1]bool
		distinct := 0
		first := -1
		for i := chop; i < len(n.hand); i++ {
			s := n.hand[i]
			if s.clued {
				continue
			}
			if !g.board.isCritical(s.card) {
				break
			}
			if first < 0 {
				first = i
			}
			if !atRisk[s.card.Rank] {
				atRisk[s.card.Rank] = true
				distinct++
			}
		}
		if first >= 0 && distinct == dist {
			return ClueAction(n.ID, RankFeature(n.hand[first].card.Rank)), true
		}
	}
	return Action{}, false
}

// isCritical reports whether c is the last copy of a card still needed.
func (b *Board) isCritical(c Card) bool {
	return b.remaining[c.Index()] == 1 && b.eventuallyPlayable.Has(c)
}

// findPlayClue looks for a clue that tells the nearest possible neighbor to
// play a card.
func (p *Player) findPlayClue(g *Game) (Action, bool) {
	oneAway := g.board.OneAway()
	for _, n := range g.neighbors(p.ID) {
		for i := len(n.hand) - 1; i >= 0; i-- {
			target := n.hand[i].card
			if !oneAway.Has(target) {
				continue
			}
			for _, f := range p.candidateClues(n, target) {
				touched := n.touchedBy(f)
				if !p.goodTouch(g, n, touched) {
					continue
				}
				newest := n.hand[touched[len(touched)-1]].card
				if !oneAway.Has(newest) {
					continue
				}
				return ClueAction(n.ID, f), true
			}
		}
	}
	return Action{}, false
}

// candidateClues returns the color and number clue for target, ordered by
// the strategy's touch preference. Ties keep the color clue first.
func (p *Player) candidateClues(n *Player, target Card) []Feature {
	cands := []Feature{SuitFeature(target.Suit), RankFeature(target.Rank)}
	sizes := map[Feature]int{
		cands[0]: len(n.touchedBy(cands[0])),
		cands[1]: len(n.touchedBy(cands[1])),
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if p.strategy.PreferBigTouches {
			return sizes[cands[i]] > sizes[cands[j]]
		}
		return sizes[cands[i]] < sizes[cands[j]]
	})
	return cands
}

// touchedBy lists the hand positions a clue with f would touch, oldest first.
func (p *Player) touchedBy(f Feature) []int {
	var out []int
	for i, s := range p.hand {
		if f.Matches(s.card) {
			out = append(out, i)
		}
	}
	return out
}

// goodTouch reports whether cluing positions touched in n's hand would only
// mark useful, unambiguous, new information.
func (p *Player) goodTouch(g *Game, n *Player, touched []int) bool {
	if len(touched) == 0 {
		return false
	}

	var ids CardSet
	fresh := false
	for _, i := range touched {
		s := n.hand[i]
		if !g.board.EventuallyPlayable(s.card) {
			return false
		}
		if ids.Has(s.card) {
			return false
		}
		ids.Add(s.card)
		if !s.clued {
			fresh = true
		}
	}
	if !fresh {
		return false
	}

	for _, o := range g.players {
		if o.ID == p.ID {
			continue
		}
		for i, s := range o.hand {
			if o == n && slices.Contains(touched, i) {
				continue
			}
			if known, ok := s.Known(); ok && ids.Has(known) {
				return false
			}
		}
	}

	// Own slots narrowed far enough may already be one of the touched cards.
	for _, s := range p.hand {
		if s.Count() > p.strategy.MaxUncertainty {
			continue
		}
		if s.Intersects(&ids) {
			return false
		}
	}
	return true
}

// findSelfPlay scans the hand newest first for a card worth playing.
func (p *Player) findSelfPlay(g *Game) (Action, bool) {
	oneAway := g.board.OneAway()
	for i := len(p.hand) - 1; i >= 0; i-- {
		s := p.hand[i]
		if s.AllIn(&oneAway) {
			return PlayAction(i), true
		}
		if s.play && s.Count() <= p.strategy.MaxUncertainty && s.Intersects(&oneAway) {
			return PlayAction(i), true
		}
	}
	return Action{}, false
}
