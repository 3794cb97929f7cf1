package dealer

import (
	"math/rand"

	"HoldemCore/internal/game/card"
)

// Dealer 只负责洗牌与发牌（无规则判断）
type Dealer struct {
	deck *Deck
	rnd  *rand.Rand
}

func NewDealer(rnd *rand.Rand) *Dealer {
	return &Dealer{
		deck: &Deck{},
		rnd:  rnd,
	}
}

// Resume continues dealing from a deck restored mid-hand.
func Resume(deck *Deck, rnd *rand.Rand) *Dealer {
	return &Dealer{deck: deck, rnd: rnd}
}

// NewDeck installs a fresh shuffled deck. A deck is never reused across hands.
func (d *Dealer) NewDeck() {
	d.deck = NewDeck()
	d.deck.Shuffle(d.rnd)
}

func (d *Dealer) Deck() *Deck { return d.deck }

// DealHoleCards 给每个玩家发 2 张底牌，轮流发：先每人一张，再每人第二张
func (d *Dealer) DealHoleCards(players []string) (map[string][]card.Card, error) {
	if d.deck.Len() < 2*len(players) {
		return nil, ErrEmptyDeck
	}
	out := make(map[string][]card.Card, len(players))
	for i := 0; i < 2; i++ {
		for _, id := range players {
			c, err := d.deck.Deal()
			if err != nil {
				return nil, err
			}
			out[id] = append(out[id], c)
		}
	}
	return out, nil
}

// DealCommunity 发公共牌 n 张（不烧牌）
func (d *Dealer) DealCommunity(n int) ([]card.Card, error) {
	return d.deck.DealN(n)
}
