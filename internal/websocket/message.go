package websocket

import "encoding/json"

// 服务端推送的事件
const (
	EventState = "state"
	EventError = "error"
)

type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// IncomingMessage.From 由服务端填入，客户端自报的值会被覆盖
type IncomingMessage struct {
	From  string          `json:"from"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
