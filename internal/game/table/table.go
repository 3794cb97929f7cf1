package table

import (
	"time"

	"github.com/google/uuid"

	"HoldemCore/internal/game/card"
)

// Phase 牌局阶段
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhasePreFlop    Phase = "preflop"
	PhaseFlop       Phase = "flop"
	PhaseTurn       Phase = "turn"
	PhaseRiver      Phase = "river"
	PhaseShowdown   Phase = "showdown"
)

// InHand reports whether cards are out and the hand is not decided yet.
func (p Phase) InHand() bool {
	switch p {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}
	return false
}

// Table 一局牌的纯数据，持久化时整体序列化
type Table struct {
	ID        string   `json:"id"`
	PlayerIDs []string `json:"playerIds"` // seat order

	// 运行时状态
	Deck            []card.Card `json:"deck"` // 剩余牌堆
	Community       []card.Card `json:"community"`
	Pot             int64       `json:"pot"`
	CurrentBet      int64       `json:"currentBet"`
	BettingComplete bool        `json:"bettingComplete"`
	Phase           Phase       `json:"phase"`
	Winners         []string    `json:"winners,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func NewTable(playerIDs []string) *Table {
	return &Table{
		ID:        uuid.NewString(),
		PlayerIDs: append([]string(nil), playerIDs...),
		Phase:     PhaseNotStarted,
		CreatedAt: time.Now(),
	}
}

type Player struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Chips     int64       `json:"chips"`
	Hand      []card.Card `json:"hand"`
	Active    bool        `json:"active"` // still contesting the pot
	StreetBet int64       `json:"streetBet"`
}

func NewPlayer(name string, chips int64) *Player {
	return &Player{
		ID:     uuid.NewString(),
		Name:   name,
		Chips:  chips,
		Active: true,
	}
}
