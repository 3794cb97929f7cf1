package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HoldemCore/internal/game/card"
	"HoldemCore/internal/game/dealer"
	"HoldemCore/internal/game/table"
)

const testSeed = 42

func newTestEngine(t *testing.T, chips ...int64) *Engine {
	t.Helper()
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}
	players := make([]*table.Player, 0, len(chips))
	ids := make([]string, 0, len(chips))
	for i, c := range chips {
		p := table.NewPlayer(names[i], c)
		players = append(players, p)
		ids = append(ids, p.ID)
	}
	eng, err := NewEngine(table.NewTable(ids), players, rand.New(rand.NewSource(testSeed)))
	require.NoError(t, err)
	return eng
}

func totalChips(e *Engine) int64 {
	sum := e.Table.Pot
	for _, p := range e.Players {
		sum += p.Chips
	}
	return sum
}

func TestStartRound_DealHoleCards(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000, 1000)
	require.NoError(t, eng.StartRound())

	assert.Equal(t, table.PhasePreFlop, eng.Table.Phase)
	assert.Len(t, eng.Table.Deck, 52-6)

	// same seed → same shuffled order; cards go out one per player per pass
	want := dealer.NewDeck()
	want.Shuffle(rand.New(rand.NewSource(testSeed)))
	order := want.Cards()
	for i, p := range eng.Players {
		require.Len(t, p.Hand, 2)
		assert.Equal(t, order[i], p.Hand[0])
		assert.Equal(t, order[i+3], p.Hand[1])
		assert.True(t, p.Active)
	}
	assert.NotEqual(t, eng.Players[0].Hand, eng.Players[1].Hand)
}

func TestStartRound_NeedsTwoPlayers(t *testing.T) {
	eng := newTestEngine(t, 1000, 0)
	assert.True(t, errors.Is(eng.StartRound(), ErrNotEnoughPlayers))

	eng = newTestEngine(t, 0, 0)
	assert.True(t, errors.Is(eng.StartRound(), ErrNoActivePlayers))
	assert.Equal(t, table.PhaseNotStarted, eng.Table.Phase)
}

func TestStartRound_SkipsBustedPlayers(t *testing.T) {
	eng := newTestEngine(t, 1000, 0, 1000)
	require.NoError(t, eng.StartRound())
	assert.False(t, eng.Players[1].Active)
	assert.Empty(t, eng.Players[1].Hand)
	assert.Len(t, eng.Table.Deck, 52-4)
}

func TestStartRound_RejectsHandInProgress(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000)
	require.NoError(t, eng.StartRound())
	assert.True(t, errors.Is(eng.StartRound(), ErrHandInProgress))
}

func TestStartRound_FreshDeckEachHand(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000)
	require.NoError(t, eng.StartRound())
	require.NoError(t, eng.Fold(eng.Players[1].ID))
	_, err := eng.AwardPot()
	require.NoError(t, err)

	require.NoError(t, eng.StartRound())
	assert.Len(t, eng.Table.Deck, 52-4)
	assert.Empty(t, eng.Table.Community)
	assert.Empty(t, eng.Table.Winners)
}

func TestDealCommunityCards_Streets(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000)
	require.NoError(t, eng.StartRound())

	assert.True(t, errors.Is(eng.DealCommunityCards(1), ErrInvalidCommunityCount))
	assert.True(t, errors.Is(eng.DealCommunityCards(0), ErrInvalidCommunityCount))

	require.NoError(t, eng.DealCommunityCards(3))
	assert.Equal(t, table.PhaseFlop, eng.Table.Phase)
	assert.Len(t, eng.Table.Community, 3)
	assert.Len(t, eng.Table.Deck, 52-4-3)

	require.NoError(t, eng.DealCommunityCards(1))
	assert.Equal(t, table.PhaseTurn, eng.Table.Phase)
	require.NoError(t, eng.DealCommunityCards(1))
	assert.Equal(t, table.PhaseRiver, eng.Table.Phase)
	assert.Len(t, eng.Table.Community, 5)

	assert.True(t, errors.Is(eng.DealCommunityCards(1), ErrInvalidCommunityCount))
	assert.Len(t, eng.Table.Deck, 52-4-5)
}

func TestDealCommunityCards_BeforeStart(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000)
	assert.True(t, errors.Is(eng.DealCommunityCards(3), ErrHandNotStarted))
}

func TestBettingRound_MovesChipsIntoPot(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000, 1000)
	require.NoError(t, eng.StartRound())
	before := totalChips(eng)

	require.NoError(t, eng.BettingRound(10))
	assert.Equal(t, int64(30), eng.Table.Pot)
	assert.Equal(t, int64(10), eng.Table.CurrentBet)
	assert.True(t, eng.Table.BettingComplete)
	for _, p := range eng.Players {
		assert.Equal(t, int64(990), p.Chips)
	}

	// Matching the same amount again on this street costs nothing more.
	require.NoError(t, eng.BettingRound(10))
	assert.Equal(t, int64(30), eng.Table.Pot)
	assert.Equal(t, before, totalChips(eng))
}

func TestBettingRound_ShortStackFolds(t *testing.T) {
	eng := newTestEngine(t, 1000, 5, 1000)
	require.NoError(t, eng.StartRound())

	require.NoError(t, eng.BettingRound(10))
	assert.False(t, eng.Players[1].Active)
	assert.Equal(t, int64(5), eng.Players[1].Chips)
	assert.Equal(t, int64(20), eng.Table.Pot)
	assert.Equal(t, table.PhasePreFlop, eng.Table.Phase)
}

func TestBettingRound_LastContenderWins(t *testing.T) {
	eng := newTestEngine(t, 1000, 5)
	require.NoError(t, eng.StartRound())

	require.NoError(t, eng.BettingRound(10))
	assert.Equal(t, table.PhaseShowdown, eng.Table.Phase)
	assert.Equal(t, []string{eng.Players[0].ID}, eng.Table.Winners)

	payouts, err := eng.AwardPot()
	require.NoError(t, err)
	assert.Equal(t, int64(10), payouts[eng.Players[0].ID])
	assert.Equal(t, int64(1000), eng.Players[0].Chips)
	assert.Zero(t, eng.Table.Pot)
}

func TestBettingRound_NeverFoldsEveryone(t *testing.T) {
	eng := newTestEngine(t, 5, 5)
	require.NoError(t, eng.StartRound())

	require.NoError(t, eng.BettingRound(10))
	// first player folds, the second is left uncontested
	assert.False(t, eng.Players[0].Active)
	assert.True(t, eng.Players[1].Active)
	assert.Equal(t, []string{eng.Players[1].ID}, eng.Table.Winners)
}

func TestBet(t *testing.T) {
	eng := newTestEngine(t, 100, 100)
	require.NoError(t, eng.StartRound())
	a, b := eng.Players[0], eng.Players[1]

	require.NoError(t, eng.Bet(a.ID, 40))
	assert.Equal(t, int64(40), eng.Table.CurrentBet)
	assert.Equal(t, int64(60), a.Chips)

	err := eng.Bet(b.ID, 150)
	assert.True(t, errors.Is(err, ErrInsufficientChips))
	assert.Equal(t, int64(100), b.Chips)
	assert.True(t, b.Active)

	assert.True(t, errors.Is(eng.Bet(b.ID, 0), ErrInvalidAmount))
	assert.True(t, errors.Is(eng.Bet("nobody", 10), ErrPlayerNotFound))
}

func TestFold(t *testing.T) {
	eng := newTestEngine(t, 100, 100, 100)
	require.NoError(t, eng.StartRound())

	require.NoError(t, eng.Fold(eng.Players[0].ID))
	assert.True(t, errors.Is(eng.Bet(eng.Players[0].ID, 10), ErrPlayerFolded))
	assert.Equal(t, table.PhasePreFlop, eng.Table.Phase)

	require.NoError(t, eng.Fold(eng.Players[1].ID))
	assert.Equal(t, table.PhaseShowdown, eng.Table.Phase)
	assert.Equal(t, []string{eng.Players[2].ID}, eng.Table.Winners)
	assert.True(t, errors.Is(eng.Fold(eng.Players[2].ID), ErrHandEnded))
}

func rigHand(t *testing.T, eng *Engine, board []string, hands ...[]string) {
	t.Helper()
	require.NoError(t, eng.StartRound())
	eng.Table.Community = card.MustParseList(board...)
	eng.Table.Phase = table.PhaseRiver
	for i, h := range hands {
		eng.Players[i].Hand = card.MustParseList(h...)
	}
}

func TestDetermineWinner_Single(t *testing.T) {
	eng := newTestEngine(t, 100, 100)
	rigHand(t, eng,
		[]string{"Q♠", "J♠", "10♠", "5♥", "6♦"},
		[]string{"A♠", "K♠"},
		[]string{"2♥", "3♦"},
	)

	winners, err := eng.DetermineWinner()
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Alice", winners[0].Name)
	assert.Equal(t, table.PhaseShowdown, eng.Table.Phase)
}

func TestDetermineWinner_Tie(t *testing.T) {
	eng := newTestEngine(t, 100, 100, 100)
	rigHand(t, eng,
		[]string{"A♠", "K♦", "Q♣", "J♥", "10♠"},
		[]string{"2♣", "3♦"},
		[]string{"2♦", "3♣"},
		[]string{"4♦", "4♣"},
	)

	winners, err := eng.DetermineWinner()
	require.NoError(t, err)
	assert.Len(t, winners, 3)
	assert.Len(t, eng.Table.Winners, 3)
}

func TestDetermineWinner_IgnoresFolded(t *testing.T) {
	eng := newTestEngine(t, 100, 100, 100)
	rigHand(t, eng,
		[]string{"2♠", "7♦", "9♣", "J♥", "K♠"},
		[]string{"A♣", "A♦"},
		[]string{"3♦", "4♣"},
		[]string{"5♦", "6♣"},
	)
	eng.Players[0].Active = false

	winners, err := eng.DetermineWinner()
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Carol", winners[0].Name)
}

func TestDetermineWinner_NoActivePlayers(t *testing.T) {
	eng := newTestEngine(t, 100, 100)
	require.NoError(t, eng.StartRound())
	for _, p := range eng.Players {
		p.Active = false
	}
	_, err := eng.DetermineWinner()
	assert.True(t, errors.Is(err, ErrNoActivePlayers))

	fresh := newTestEngine(t, 100, 100)
	_, err = fresh.DetermineWinner()
	assert.True(t, errors.Is(err, ErrHandNotStarted))
}

func TestAwardPot_SplitsOddChips(t *testing.T) {
	eng := newTestEngine(t, 100, 100, 100)
	rigHand(t, eng,
		[]string{"A♠", "K♦", "Q♣", "J♥", "10♠"},
		[]string{"2♣", "3♦"},
		[]string{"2♦", "3♣"},
		[]string{"4♦", "4♣"},
	)
	require.NoError(t, eng.Bet(eng.Players[0].ID, 33))
	require.NoError(t, eng.Bet(eng.Players[1].ID, 33))
	require.NoError(t, eng.Bet(eng.Players[2].ID, 34))
	before := totalChips(eng)

	_, err := eng.AwardPot()
	assert.True(t, errors.Is(err, ErrHandInProgress))

	eng.Players[2].Active = false
	_, err = eng.DetermineWinner()
	require.NoError(t, err)

	payouts, err := eng.AwardPot()
	require.NoError(t, err)
	assert.Equal(t, int64(50), payouts[eng.Players[0].ID])
	assert.Equal(t, int64(50), payouts[eng.Players[1].ID])
	assert.Equal(t, before, totalChips(eng))

	eng.Table.Pot = 101
	eng.Table.Winners = []string{eng.Players[0].ID, eng.Players[1].ID}
	payouts, err = eng.AwardPot()
	require.NoError(t, err)
	assert.Equal(t, int64(51), payouts[eng.Players[0].ID])
	assert.Equal(t, int64(50), payouts[eng.Players[1].ID])
}

func TestAdvance_FullHand(t *testing.T) {
	eng := newTestEngine(t, 1000, 1000)
	require.NoError(t, eng.StartRound())
	before := totalChips(eng)

	wantBoard := []int{3, 4, 5}
	for _, n := range wantBoard {
		require.NoError(t, eng.BettingRound(20))
		winners, err := eng.Advance()
		require.NoError(t, err)
		assert.Nil(t, winners)
		assert.Len(t, eng.Table.Community, n)
		assert.Zero(t, eng.Table.CurrentBet)
	}

	require.NoError(t, eng.BettingRound(20))
	winners, err := eng.Advance()
	require.NoError(t, err)
	assert.NotEmpty(t, winners)
	assert.Equal(t, table.PhaseShowdown, eng.Table.Phase)
	assert.Equal(t, int64(160), eng.Table.Pot)
	assert.Equal(t, before, totalChips(eng))

	_, err = eng.Advance()
	assert.True(t, errors.Is(err, ErrHandEnded))

	assert.True(t, errors.Is(eng.StartRound(), ErrPotNotSettled))
	_, err = eng.AwardPot()
	require.NoError(t, err)
	assert.Equal(t, before, totalChips(eng))
	require.NoError(t, eng.StartRound())
}

func TestState(t *testing.T) {
	eng := newTestEngine(t, 100, 100)
	rigHand(t, eng,
		[]string{"Q♠", "J♠", "10♠", "5♥", "6♦"},
		[]string{"A♠", "K♠"},
		[]string{"2♥", "3♦"},
	)
	require.NoError(t, eng.Bet(eng.Players[0].ID, 20))

	s := eng.State()
	assert.Equal(t, eng.Table.ID, s.ID)
	assert.Equal(t, table.PhaseRiver, s.Phase)
	assert.Equal(t, []string{"Q♠", "J♠", "10♠", "5♥", "6♦"}, s.Community)
	assert.Equal(t, int64(20), s.Pot)
	require.Len(t, s.Players, 2)

	alice, bob := s.Players[0], s.Players[1]
	assert.Equal(t, []string{"A♠", "K♠"}, alice.Hand)
	assert.True(t, alice.PotOdds.IsInfinite())
	assert.Equal(t, "Straight Flush, A high", alice.BestHand)
	assert.InDelta(t, 1.0, float64(bob.PotOdds), 1e-9)
}

func TestNewEngine_MissingPlayer(t *testing.T) {
	p := table.NewPlayer("Alice", 100)
	tbl := table.NewTable([]string{p.ID, "ghost"})
	_, err := NewEngine(tbl, []*table.Player{p}, rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, ErrPlayerNotFound))
}

func TestNewEngine_ResumesDeck(t *testing.T) {
	eng := newTestEngine(t, 100, 100)
	require.NoError(t, eng.StartRound())
	require.NoError(t, eng.DealCommunityCards(3))
	next := eng.Table.Deck[0]

	resumed, err := NewEngine(eng.Table, eng.Players, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.NoError(t, resumed.DealCommunityCards(1))
	assert.Equal(t, next, resumed.Table.Community[3])
}
