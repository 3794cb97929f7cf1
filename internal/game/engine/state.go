package engine

import (
	"HoldemCore/internal/game/card"
	"HoldemCore/internal/game/evaluator"
	"HoldemCore/internal/game/odds"
	"HoldemCore/internal/game/table"
)

// State 当前牌局快照（给展示层）
func (e *Engine) State() table.Snapshot {
	t := e.Table
	s := table.Snapshot{
		ID:              t.ID,
		Phase:           t.Phase,
		Players:         make([]table.PlayerView, 0, len(e.Players)),
		Community:       card.Strings(t.Community),
		Pot:             t.Pot,
		CurrentBet:      t.CurrentBet,
		BettingComplete: t.BettingComplete,
		Winners:         append([]string(nil), t.Winners...),
	}
	for _, p := range e.Players {
		v := table.PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Chips:     p.Chips,
			Hand:      card.Strings(p.Hand),
			Active:    p.Active,
			StreetBet: p.StreetBet,
			PotOdds:   odds.PotOdds(t.Pot, t.CurrentBet-p.StreetBet),
		}
		if len(p.Hand) > 0 {
			if hv, err := evaluator.Evaluate(e.holding(p)); err == nil {
				v.BestHand = hv.Label()
			}
		}
		s.Players = append(s.Players, v)
	}
	return s
}
