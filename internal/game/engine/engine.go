package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/thoas/go-funk"

	"HoldemCore/internal/game/card"
	"HoldemCore/internal/game/dealer"
	"HoldemCore/internal/game/evaluator"
	"HoldemCore/internal/game/table"
)

// ---------------------
//       ENGINE
// ---------------------

// Engine drives one hand on a Table. Players are borrowed, not owned: their
// stacks outlive the hand and are persisted separately.
type Engine struct {
	Table   *table.Table
	Players []*table.Player // seat order
	Dealer  *dealer.Dealer
}

// NewEngine binds players to the table's seats and resumes its deck.
func NewEngine(t *table.Table, players []*table.Player, rnd *rand.Rand) (*Engine, error) {
	byID := make(map[string]*table.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	seated := make([]*table.Player, 0, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		seated = append(seated, p)
	}
	return &Engine{
		Table:   t,
		Players: seated,
		Dealer:  dealer.Resume(dealer.FromCards(t.Deck), rnd),
	}, nil
}

// StartRound 新一手：新牌堆洗牌 + 每人两张底牌
func (e *Engine) StartRound() error {
	t := e.Table
	if t.Phase.InHand() {
		return ErrHandInProgress
	}
	if t.Pot > 0 {
		return ErrPotNotSettled
	}

	ids := make([]string, 0, len(e.Players))
	for _, p := range e.Players {
		if p.Chips > 0 {
			ids = append(ids, p.ID)
		}
	}
	switch len(ids) {
	case 0:
		return ErrNoActivePlayers
	case 1:
		return ErrNotEnoughPlayers
	}

	e.Dealer.NewDeck()
	hands, err := e.Dealer.DealHoleCards(ids)
	if err != nil {
		return err
	}
	for _, p := range e.Players {
		p.Hand = hands[p.ID]
		p.StreetBet = 0
		p.Active = p.Chips > 0
	}

	t.Community = nil
	t.Pot = 0
	t.CurrentBet = 0
	t.BettingComplete = false
	t.Winners = nil
	t.Phase = table.PhasePreFlop
	e.syncDeck()
	return nil
}

// DealCommunityCards deals n board cards. The caller picks n per street; the
// board may only ever hold 3, 4 or 5 cards afterwards.
func (e *Engine) DealCommunityCards(n int) error {
	if err := e.requireInHand(); err != nil {
		return err
	}
	t := e.Table
	next := len(t.Community) + n
	phase, ok := phaseForBoard(next)
	if n <= 0 || !ok {
		return fmt.Errorf("%w: %d on a board of %d", ErrInvalidCommunityCount, n, len(t.Community))
	}

	cards, err := e.Dealer.DealCommunity(n)
	if err != nil {
		return err
	}
	t.Community = append(t.Community, cards...)
	t.Phase = phase
	e.resetStreet()
	e.syncDeck()
	return nil
}

// BettingRound has every contender match amount for this street. Anyone who
// cannot cover it folds; a short stack is never reported as an error here.
func (e *Engine) BettingRound(amount int64) error {
	if err := e.requireInHand(); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	e.Table.BettingComplete = false
	for _, p := range e.Players {
		if !p.Active {
			continue
		}
		if len(e.activePlayers()) <= 1 {
			break
		}
		need := amount - p.StreetBet
		if need <= 0 {
			continue
		}
		if err := e.placeBet(p, need); errors.Is(err, ErrInsufficientChips) {
			p.Active = false
		}
	}
	e.Table.BettingComplete = true
	e.finishIfUncontested()
	return nil
}

// Bet puts amount more chips in for one player.
func (e *Engine) Bet(playerID string, amount int64) error {
	if err := e.requireInHand(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	p, err := e.contender(playerID)
	if err != nil {
		return err
	}
	return e.placeBet(p, amount)
}

func (e *Engine) Fold(playerID string) error {
	if err := e.requireInHand(); err != nil {
		return err
	}
	p, err := e.contender(playerID)
	if err != nil {
		return err
	}
	p.Active = false
	e.finishIfUncontested()
	return nil
}

// Advance moves to the next street: flop, turn, river, then showdown.
// Winners are returned only once the hand reaches showdown.
func (e *Engine) Advance() ([]*table.Player, error) {
	switch e.Table.Phase {
	case table.PhasePreFlop:
		return nil, e.DealCommunityCards(3)
	case table.PhaseFlop, table.PhaseTurn:
		return nil, e.DealCommunityCards(1)
	case table.PhaseRiver:
		return e.DetermineWinner()
	case table.PhaseShowdown:
		return nil, ErrHandEnded
	}
	return nil, ErrHandNotStarted
}

// DetermineWinner evaluates every contender's hole cards plus the board.
// Equal best hands all win.
func (e *Engine) DetermineWinner() ([]*table.Player, error) {
	t := e.Table
	if t.Phase == table.PhaseNotStarted {
		return nil, ErrHandNotStarted
	}
	active := e.activePlayers()
	if len(active) == 0 {
		return nil, ErrNoActivePlayers
	}

	winners := active[:1]
	if len(active) > 1 {
		var best evaluator.HandValue
		winners = nil
		for _, p := range active {
			v, err := evaluator.Evaluate(e.holding(p))
			if err != nil {
				return nil, fmt.Errorf("evaluate %s: %w", p.Name, err)
			}
			switch c := v.Compare(best); {
			case winners == nil || c > 0:
				best = v
				winners = []*table.Player{p}
			case c == 0:
				winners = append(winners, p)
			}
		}
	}

	t.Winners = make([]string, 0, len(winners))
	for _, p := range winners {
		t.Winners = append(t.Winners, p.ID)
	}
	t.Phase = table.PhaseShowdown
	t.BettingComplete = true
	return winners, nil
}

// AwardPot splits the single pot evenly between the winners. Odd chips go
// one each to winners in seat order.
func (e *Engine) AwardPot() (map[string]int64, error) {
	t := e.Table
	switch {
	case t.Phase == table.PhaseNotStarted:
		return nil, ErrHandNotStarted
	case t.Phase != table.PhaseShowdown:
		return nil, ErrHandInProgress
	case len(t.Winners) == 0:
		return nil, ErrNoActivePlayers
	}

	winners := make([]*table.Player, 0, len(t.Winners))
	for _, p := range e.Players {
		if funk.ContainsString(t.Winners, p.ID) {
			winners = append(winners, p)
		}
	}
	if len(winners) != len(t.Winners) {
		return nil, fmt.Errorf("%w: winner not seated", ErrPlayerNotFound)
	}

	share := t.Pot / int64(len(winners))
	rem := t.Pot % int64(len(winners))
	payouts := make(map[string]int64, len(winners))
	for _, p := range winners {
		amt := share
		if rem > 0 {
			amt++
			rem--
		}
		p.Chips += amt
		payouts[p.ID] = amt
	}
	t.Pot = 0
	return payouts, nil
}

// Winners resolves the recorded winner IDs to players.
func (e *Engine) Winners() []*table.Player {
	out := make([]*table.Player, 0, len(e.Table.Winners))
	for _, p := range e.Players {
		if funk.ContainsString(e.Table.Winners, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) Player(id string) (*table.Player, bool) {
	for _, p := range e.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (e *Engine) activePlayers() []*table.Player {
	return funk.Filter(e.Players, func(p *table.Player) bool {
		return p.Active
	}).([]*table.Player)
}

func (e *Engine) contender(id string) (*table.Player, error) {
	p, ok := e.Player(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: %s", ErrPlayerFolded, p.Name)
	}
	return p, nil
}

func (e *Engine) placeBet(p *table.Player, amount int64) error {
	if amount > p.Chips {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientChips, p.Name, p.Chips, amount)
	}
	p.Chips -= amount
	p.StreetBet += amount
	e.Table.Pot += amount
	if p.StreetBet > e.Table.CurrentBet {
		e.Table.CurrentBet = p.StreetBet
	}
	return nil
}

// finishIfUncontested ends the hand once a single contender is left.
func (e *Engine) finishIfUncontested() {
	active := e.activePlayers()
	if len(active) != 1 {
		return
	}
	e.Table.Winners = []string{active[0].ID}
	e.Table.Phase = table.PhaseShowdown
	e.Table.BettingComplete = true
}

func (e *Engine) requireInHand() error {
	switch e.Table.Phase {
	case table.PhaseNotStarted:
		return ErrHandNotStarted
	case table.PhaseShowdown:
		return ErrHandEnded
	}
	return nil
}

func (e *Engine) resetStreet() {
	e.Table.CurrentBet = 0
	e.Table.BettingComplete = false
	for _, p := range e.Players {
		p.StreetBet = 0
	}
}

func (e *Engine) holding(p *table.Player) []card.Card {
	cards := make([]card.Card, 0, len(p.Hand)+len(e.Table.Community))
	cards = append(cards, p.Hand...)
	return append(cards, e.Table.Community...)
}

func (e *Engine) syncDeck() {
	e.Table.Deck = e.Dealer.Deck().Cards()
}

func phaseForBoard(n int) (table.Phase, bool) {
	switch n {
	case 3:
		return table.PhaseFlop, true
	case 4:
		return table.PhaseTurn, true
	case 5:
		return table.PhaseRiver, true
	}
	return "", false
}
