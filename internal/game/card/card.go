package card

import (
	"fmt"
	"strings"
)

// Suit 花色 (0-3)
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in canonical deck order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

func (s Suit) Valid() bool { return s >= Clubs && s <= Spades }

func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return suitSymbols[s]
}

// Rank 点数 2-14 (A=14)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var faceSymbols = map[Rank]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func (r Rank) Valid() bool { return r >= Two && r <= Ace }

// Ordinal maps 2..A onto 0..12.
func (r Rank) Ordinal() int { return int(r - Two) }

func (r Rank) String() string {
	if s, ok := faceSymbols[r]; ok {
		return s
	}
	if !r.Valid() {
		return "?"
	}
	return fmt.Sprintf("%d", int(r))
}

// Card 定义 (suit 0-3, rank 2-14)
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// New builds a card. An out-of-range rank or suit is a programming error.
func New(r Rank, s Suit) Card {
	if !r.Valid() || !s.Valid() {
		panic(fmt.Sprintf("card: invalid rank %d or suit %d", r, s))
	}
	return Card{Suit: s, Rank: r}
}

func (c Card) Valid() bool { return c.Rank.Valid() && c.Suit.Valid() }

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Compare orders by rank, then suit.
func (c Card) Compare(o Card) int {
	switch {
	case c.Rank != o.Rank:
		if c.Rank < o.Rank {
			return -1
		}
		return 1
	case c.Suit != o.Suit:
		if c.Suit < o.Suit {
			return -1
		}
		return 1
	}
	return 0
}

// Parse reads "A♠", "10♥", "Td" style strings.
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	runes := []rune(s)
	suitPart := string(runes[len(runes)-1])
	rankPart := strings.ToUpper(string(runes[:len(runes)-1]))

	var suit Suit
	switch suitPart {
	case "♣", "c", "C":
		suit = Clubs
	case "♦", "d", "D":
		suit = Diamonds
	case "♥", "h", "H":
		suit = Hearts
	case "♠", "s", "S":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in %q", s)
	}

	for _, r := range Ranks {
		if r.String() == rankPart {
			return Card{Suit: suit, Rank: r}, nil
		}
	}
	if rankPart == "T" {
		return Card{Suit: suit, Rank: Ten}, nil
	}
	return Card{}, fmt.Errorf("invalid rank in %q", s)
}

// MustParse is Parse for fixtures; it panics on bad input.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ParseList(ss ...string) ([]Card, error) {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func MustParseList(ss ...string) []Card {
	out, err := ParseList(ss...)
	if err != nil {
		panic(err)
	}
	return out
}

// Strings renders cards for display.
func Strings(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}
