package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/hanabi/internal/log"
)

const (
	MaxClueTokens = 8
	MaxStrikes    = 3
	MaxTurns      = 100
)

// Game is one simulated game: the table state plus the turn engine. A Game is
// single-threaded; nothing in it blocks.
type Game struct {
	Logger log.EventLogger

	seed    int64
	pile    *DrawPile
	board   *Board
	players []*Player

	tokens  int
	strikes int // remaining mistakes
	score   int

	turns      int // completed turn counter, -1 before the first turn
	turn       int // active seat, -1 before the first turn
	lastPlayer int // seat that found the pile empty, -1 while cards remain
	maxTurns   int
	outcome    Outcome

	cluesGiven int
	discards   int
	plays      int
	misplays   int
}

// New builds the pile, the board and the players and deals the opening hands.
func New(cfg Config) (*Game, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	var pile *DrawPile
	switch {
	case cfg.Pile != nil:
		pile = NewDrawPile(cfg.Pile, nil)
	case cfg.NoShuffle:
		pile = NewDrawPile(NormalDeck(), nil)
	default:
		pile = NewDrawPile(NormalDeck(), rand.New(rand.NewSource(cfg.Seed)))
	}
	if len(cfg.Bottom) > 0 {
		pile.MoveToBottom(cfg.Bottom...)
	}
	if need := cfg.Players * cfg.HandSize; pile.Len() < need {
		return nil, fmt.Errorf("pile has %d cards, opening hands need %d", pile.Len(), need)
	}

	g := &Game{
		Logger:     logger,
		seed:       cfg.Seed,
		pile:       pile,
		board:      NewBoard(pile.Composition()),
		tokens:     MaxClueTokens,
		strikes:    MaxStrikes,
		turns:      -1,
		turn:       -1,
		lastPlayer: -1,
		maxTurns:   cfg.MaxTurns,
	}
	for i := 0; i < cfg.Players; i++ {
		g.players = append(g.players, newPlayer(i, cfg.seatStrategy(i)))
	}

	for i := 0; i < cfg.HandSize; i++ {
		for _, p := range g.players {
			c, _ := g.pile.Draw()
			g.give(p, c)
			g.log(log.NewDealEvent(p.ID, c.String()))
			g.settle()
		}
	}
	return g, nil
}

// --- Accessors ---

func (g *Game) Seed() int64             { return g.seed }
func (g *Game) Board() *Board           { return g.board }
func (g *Game) Players() []*Player      { return g.players }
func (g *Game) Player(seat int) *Player { return g.players[seat] }
func (g *Game) ClueTokens() int         { return g.tokens }
func (g *Game) Strikes() int            { return g.strikes }
func (g *Game) Score() int              { return g.score }
func (g *Game) Turns() int              { return g.turns }
func (g *Game) ActiveSeat() int         { return g.turn }
func (g *Game) LastPlayer() int         { return g.lastPlayer }
func (g *Game) DeckCount() int          { return g.pile.Len() }
func (g *Game) Outcome() Outcome        { return g.outcome }
func (g *Game) Over() bool              { return g.outcome.Terminal() }

// neighbors returns the other players in turn order starting with the next
// seat.
func (g *Game) neighbors(seat int) []*Player {
	out := make([]*Player, 0, len(g.players)-1)
	out = append(out, g.players[seat+1:]...)
	out = append(out, g.players[:seat]...)
	return out
}

// Result summarizes the game so far.
func (g *Game) Result() GameResult {
	return GameResult{
		Seed:        g.seed,
		Score:       g.score,
		Outcome:     g.outcome,
		OutcomeName: g.outcome.String(),
		Turns:       g.turns,
		StrikesUsed: MaxStrikes - g.strikes,
		CluesGiven:  g.cluesGiven,
		Discards:    g.discards,
		Plays:       g.plays,
		Misplays:    g.misplays,
	}
}

// --- Turn loop ---

// Run plays the game to a terminal outcome. The context is checked between
// turns.
func (g *Game) Run(ctx context.Context) (GameResult, error) {
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		g.Step()
	}
	return g.Result(), nil
}

// Step advances to the next turn and lets the active player act. It returns
// the outcome after the turn; once terminal, Step does nothing.
func (g *Game) Step() Outcome {
	if g.Over() {
		return g.outcome
	}
	g.turns++
	if g.turns == g.maxTurns {
		g.finish(OutcomeMaxTurns)
		return g.outcome
	}
	next := (g.turn + 1) % len(g.players)
	if g.lastPlayer >= 0 && next == g.lastPlayer {
		g.finish(OutcomeBottomedOut)
		return g.outcome
	}
	g.turn = next
	g.log(log.NewTurnEvent(g.turns, g.turn))

	a := g.players[g.turn].Decide(g)
	g.Apply(a)
	return g.outcome
}

// NextSeat reports the seat that the next Step would let act. It returns
// false when that Step ends the game instead.
func (g *Game) NextSeat() (int, bool) {
	if g.Over() || g.turns+1 == g.maxTurns {
		return -1, false
	}
	next := (g.turn + 1) % len(g.players)
	if g.lastPlayer >= 0 && next == g.lastPlayer {
		return -1, false
	}
	return next, true
}

// Apply performs a for the active player.
func (g *Game) Apply(a Action) {
	switch a.Kind {
	case ActionPlay:
		g.Play(a.Index)
	case ActionDiscard:
		g.Discard(a.Index)
	case ActionClue:
		g.Clue(a.Target, a.Feature)
	default:
		panic(contractf("Game.Apply", "unknown action kind %d", a.Kind))
	}
}

func (g *Game) active(op string) int {
	if g.Over() {
		panic(contractf(op, "game is over (%s)", g.outcome))
	}
	if g.turn < 0 {
		panic(contractf(op, "no player is active yet"))
	}
	return g.turn
}

// Play plays the active player's card at position idx.
func (g *Game) Play(idx int) {
	g.play(g.active("Game.Play"), idx)
}

// Discard discards the active player's card at position idx. Discarding with
// every clue token available is illegal.
func (g *Game) Discard(idx int) {
	g.discard(g.active("Game.Discard"), idx)
}

// Clue gives a clue from the active player to target.
func (g *Game) Clue(target int, f Feature) {
	g.clue(g.active("Game.Clue"), target, f)
}

func (g *Game) play(seat, idx int) {
	p := g.players[seat]
	card := g.vacate(p, idx)
	g.remove(card)

	if g.board.TryPlay(card) {
		g.score++
		g.plays++
		g.log(log.NewPlayEvent(g.turns, seat, card.String(), g.score))
	} else {
		g.strikes--
		g.misplays++
		g.log(log.NewMisplayEvent(g.turns, seat, card.String(), g.strikes))
	}
	g.settle()

	if g.strikes == 0 {
		g.finish(OutcomeStruckOut)
	} else if g.score == MaxScore {
		g.finish(OutcomeVictory)
	}
}

func (g *Game) discard(seat, idx int) {
	if g.tokens >= MaxClueTokens {
		panic(contractf("Game.Discard", "player %d cannot discard with %d clue tokens", seat, g.tokens))
	}
	p := g.players[seat]
	card := g.vacate(p, idx)
	g.tokens++
	g.discards++
	g.log(log.NewDiscardEvent(g.turns, seat, card.String(), g.tokens))
	g.remove(card)
	g.settle()
}

func (g *Game) clue(from, to int, f Feature) {
	switch {
	case g.tokens <= 0:
		panic(contractf("Game.Clue", "player %d has no clue tokens to spend", from))
	case !f.Valid():
		panic(contractf("Game.Clue", "clue names neither suit nor rank"))
	case to < 0 || to >= len(g.players):
		panic(contractf("Game.Clue", "no player %d", to))
	case from == to:
		panic(contractf("Game.Clue", "player %d cannot clue themselves", from))
	}

	g.tokens--
	g.cluesGiven++
	touched := len(g.players[to].touchedBy(f))
	g.log(log.NewClueEvent(g.turns, from, to, f.String(), touched, g.tokens))
	for _, p := range g.players {
		p.receiveClue(from, to, f, g.board)
	}
	g.settle()
}

// vacate removes the card at idx from p's hand and refills the position.
func (g *Game) vacate(p *Player, idx int) Card {
	card := p.pop(idx)
	g.draw(p)
	return card
}

// draw refills p's hand from the pile. The first player to find the pile
// empty becomes the last player of the game.
func (g *Game) draw(p *Player) {
	c, ok := g.pile.Draw()
	if !ok {
		if g.lastPlayer < 0 {
			g.lastPlayer = p.ID
			g.log(log.NewPileEmptyEvent(g.turns, p.ID))
		}
		return
	}
	g.give(p, c)
	g.log(log.NewDrawEvent(g.turns, p.ID, c.String(), g.pile.Len()))
}

// give shows c to everyone but p, then puts it in p's hand.
func (g *Game) give(p *Player, c Card) {
	for _, o := range g.players {
		if o.ID != p.ID {
			o.seeDraw(c)
		}
	}
	p.take(c, g.players, g.board)
}

// remove accounts for a card leaving play and broadcasts exhaustion.
func (g *Game) remove(c Card) {
	if !g.board.Remove(c) {
		return
	}
	g.log(log.NewExhaustedEvent(g.turns, c.String()))
	for _, p := range g.players {
		p.exhaust(c)
	}
}

// settle drains every player's self-exhaust queue in seat order.
func (g *Game) settle() {
	for _, p := range g.players {
		for _, d := range p.drainSelfExhausts() {
			g.log(log.NewDeductionEvent(g.turns, p.ID, d.Position, d.Card.String()))
		}
	}
}

func (g *Game) finish(o Outcome) {
	g.outcome = o
	g.log(log.NewGameOverEvent(g.turns, o.String(), g.score))
}

func (g *Game) log(e log.GameEvent) {
	g.Logger.Log(e)
}
