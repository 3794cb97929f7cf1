package dealer

import (
	"errors"
	"math/rand"

	"HoldemCore/internal/game/card"
)

var ErrEmptyDeck = errors.New("deck is empty")

// Deck 一副牌，发牌从队首取
type Deck struct {
	cards []card.Card
}

// NewDeck returns the 52 cards in canonical order: suit-major, 2..A inside each suit.
func NewDeck() *Deck {
	cards := make([]card.Card, 0, 52)
	for _, s := range card.Suits {
		for _, r := range card.Ranks {
			cards = append(cards, card.New(r, s))
		}
	}
	return &Deck{cards: cards}
}

// FromCards restores a partially dealt deck, e.g. after loading a hand in progress.
func FromCards(cards []card.Card) *Deck {
	return &Deck{cards: append([]card.Card(nil), cards...)}
}

// Shuffle Fisher-Yates 洗牌
func (d *Deck) Shuffle(rnd *rand.Rand) {
	rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Deal() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// DealN deals n cards or none at all.
func (d *Deck) DealN(n int) ([]card.Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	out := append([]card.Card(nil), d.cards[:n]...)
	d.cards = d.cards[n:]
	return out, nil
}

func (d *Deck) Len() int { return len(d.cards) }

func (d *Deck) Contains(c card.Card) bool {
	for _, x := range d.cards {
		if x == c {
			return true
		}
	}
	return false
}

// Cards returns a copy of the remaining cards.
func (d *Deck) Cards() []card.Card {
	return append([]card.Card(nil), d.cards...)
}
