package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"HoldemCore/internal/utils"
	"HoldemCore/internal/websocket"
)

const actionTimeout = 5 * time.Second

// 客户端动作：{"event":"bet","data":{"game":"...","amount":20}}
type actionPayload struct {
	Game   string `json:"game"`
	Amount int64  `json:"amount"`
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming）
// 成功时状态经 withEngine 广播；失败只回给发起者
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	var p actionPayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			m.reject(msg, fmt.Errorf("bad payload: %w", err))
			return
		}
	}
	if p.Game == "" {
		m.reject(msg, fmt.Errorf("missing game id"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	var err error
	switch msg.Event {
	case "bet":
		_, err = m.Bet(ctx, p.Game, msg.From, p.Amount)
	case "fold":
		_, err = m.Fold(ctx, p.Game, msg.From)
	default:
		err = fmt.Errorf("unknown event %q", msg.Event)
	}
	if err != nil {
		m.reject(msg, err)
	}
}

func (m *GameManager) reject(msg websocket.IncomingMessage, err error) {
	utils.Print.Warn("player action rejected", "player", msg.From, "event", msg.Event, "err", err)
	if m.hub == nil {
		return
	}
	m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
		Event: websocket.EventError,
		Data:  map[string]string{"event": msg.Event, "error": err.Error()},
	})
}
