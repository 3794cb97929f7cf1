// Package evaluator ranks Hold'em hands of five or more cards.
//
// Evaluation works on rank and suit counts rather than enumerating every
// 5-card subset: a 7-card hand is classified in a single pass over 13 rank
// buckets and 4 suit buckets. The result is a HandValue, a category followed
// by a tie-break tuple, and two HandValues compare lexicographically.
package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"HoldemCore/internal/game/card"
)

var ErrTooFewCards = errors.New("hand needs at least 5 cards")

type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// HandValue is the composite hand strength. TieBreak holds rank ordinals
// (2=0 .. A=12), most significant first.
type HandValue struct {
	Category Category `json:"category"`
	TieBreak []int    `json:"tieBreak"`
}

// Compare returns -1, 0 or 1.
func (v HandValue) Compare(o HandValue) int {
	if v.Category != o.Category {
		if v.Category < o.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(v.TieBreak) && i < len(o.TieBreak); i++ {
		if v.TieBreak[i] != o.TieBreak[i] {
			if v.TieBreak[i] < o.TieBreak[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(v.TieBreak) < len(o.TieBreak):
		return -1
	case len(v.TieBreak) > len(o.TieBreak):
		return 1
	}
	return 0
}

func (v HandValue) String() string {
	parts := make([]string, 0, len(v.TieBreak))
	for _, o := range v.TieBreak {
		parts = append(parts, ordinalRank(o).String())
	}
	return fmt.Sprintf("%s (%s)", v.Category, strings.Join(parts, ","))
}

// Label is the short form used in table snapshots, e.g. "Straight, 5 high".
func (v HandValue) Label() string {
	if len(v.TieBreak) == 0 {
		return v.Category.String()
	}
	top := ordinalRank(v.TieBreak[0]).String()
	switch v.Category {
	case Straight, StraightFlush, Flush, HighCard:
		return fmt.Sprintf("%s, %s high", v.Category, top)
	case FullHouse:
		return fmt.Sprintf("%s, %ss over %ss", v.Category, top, ordinalRank(v.TieBreak[1]))
	case TwoPair:
		return fmt.Sprintf("%s, %ss and %ss", v.Category, top, ordinalRank(v.TieBreak[1]))
	}
	return fmt.Sprintf("%s, %ss", v.Category, top)
}

func ordinalRank(o int) card.Rank { return card.Two + card.Rank(o) }

const (
	aceOrdinal   = 12
	wheelHigh    = 3 // 5-high
	numRanks     = 13
	numSuits     = 4
	handSize     = 5
	straightSpan = 4
)

// Evaluate classifies cards (normally 2 hole + 5 community) into a HandValue.
func Evaluate(cards []card.Card) (HandValue, error) {
	if len(cards) < handSize {
		return HandValue{}, fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
	}

	var rankCounts [numRanks]int
	var suitRanks [numSuits][numRanks]bool
	var suitCounts [numSuits]int
	for _, c := range cards {
		if !c.Valid() {
			panic(fmt.Sprintf("evaluator: malformed card %+v", c))
		}
		o := c.Rank.Ordinal()
		rankCounts[o]++
		if !suitRanks[c.Suit][o] {
			suitRanks[c.Suit][o] = true
			suitCounts[c.Suit]++
		}
	}

	// 同花 / 同花顺：只看该花色的牌
	var best *HandValue
	for s := 0; s < numSuits; s++ {
		if suitCounts[s] < handSize {
			continue
		}
		var cand HandValue
		if high, ok := straightHigh(suitRanks[s]); ok {
			cand = HandValue{Category: StraightFlush, TieBreak: []int{high}}
		} else {
			cand = HandValue{Category: Flush, TieBreak: topRanks(suitRanks[s], handSize)}
		}
		if best == nil || cand.Compare(*best) > 0 {
			c := cand
			best = &c
		}
	}
	if best != nil && best.Category == StraightFlush {
		return *best, nil
	}

	var present [numRanks]bool
	var quads, trips, pairs []int
	for o := aceOrdinal; o >= 0; o-- {
		n := rankCounts[o]
		if n > 0 {
			present[o] = true
		}
		switch {
		case n >= 4:
			quads = append(quads, o)
		case n == 3:
			trips = append(trips, o)
		case n == 2:
			pairs = append(pairs, o)
		}
	}

	if len(quads) > 0 {
		q := quads[0]
		return HandValue{Category: FourOfAKind, TieBreak: append([]int{q}, kickers(present, 1, q)...)}, nil
	}

	if len(trips) > 0 {
		// Highest trips; the pair is the best remaining rank holding at least
		// two cards, which may be a second set of trips.
		t := trips[0]
		pair := -1
		for o := aceOrdinal; o >= 0; o-- {
			if o != t && rankCounts[o] >= 2 {
				pair = o
				break
			}
		}
		if pair >= 0 {
			return HandValue{Category: FullHouse, TieBreak: []int{t, pair}}, nil
		}
	}

	if best != nil {
		return *best, nil
	}

	if high, ok := straightHigh(present); ok {
		return HandValue{Category: Straight, TieBreak: []int{high}}, nil
	}

	if len(trips) > 0 {
		t := trips[0]
		return HandValue{Category: ThreeOfAKind, TieBreak: append([]int{t}, kickers(present, 2, t)...)}, nil
	}

	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		return HandValue{Category: TwoPair, TieBreak: append([]int{hi, lo}, kickers(present, 1, hi, lo)...)}, nil
	}

	if len(pairs) == 1 {
		p := pairs[0]
		return HandValue{Category: OnePair, TieBreak: append([]int{p}, kickers(present, 3, p)...)}, nil
	}

	return HandValue{Category: HighCard, TieBreak: topRanks(present, handSize)}, nil
}

// Compare evaluates both hands and orders them.
func Compare(a, b []card.Card) (int, error) {
	va, err := Evaluate(a)
	if err != nil {
		return 0, err
	}
	vb, err := Evaluate(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// straightHigh finds the highest 5-long run. The wheel A-2-3-4-5 has to be
// checked on its own because the ace ordinal (12) does not neighbour 0.
func straightHigh(present [numRanks]bool) (int, bool) {
	run := 0
	for o := aceOrdinal; o >= 0; o-- {
		if !present[o] {
			run = 0
			continue
		}
		run++
		if run == handSize {
			return o + straightSpan, true
		}
	}
	if present[aceOrdinal] && present[0] && present[1] && present[2] && present[3] {
		return wheelHigh, true
	}
	return 0, false
}

func topRanks(present [numRanks]bool, n int) []int {
	out := make([]int, 0, n)
	for o := aceOrdinal; o >= 0 && len(out) < n; o-- {
		if present[o] {
			out = append(out, o)
		}
	}
	return out
}

func kickers(present [numRanks]bool, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for o := aceOrdinal; o >= 0 && len(out) < n; o-- {
		if !present[o] || contains(exclude, o) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
