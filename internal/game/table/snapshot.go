package table

import "HoldemCore/internal/game/odds"

type PlayerView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Chips     int64      `json:"chips"`
	Hand      []string   `json:"hand"`
	Active    bool       `json:"active"`
	StreetBet int64      `json:"streetBet"`
	PotOdds   odds.Ratio `json:"potOdds"`
	BestHand  string     `json:"bestHand,omitempty"`
}

// Snapshot is the display contract consumed by the HTTP and websocket layers.
type Snapshot struct {
	ID              string       `json:"id"`
	Phase           Phase        `json:"phase"`
	Players         []PlayerView `json:"players"`
	Community       []string     `json:"communityCards"`
	Pot             int64        `json:"pot"`
	CurrentBet      int64        `json:"currentBet"`
	BettingComplete bool         `json:"bettingComplete"`
	Winners         []string     `json:"winners,omitempty"`
}
