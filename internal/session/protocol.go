package session

import (
	"encoding/json"

	"github.com/inamate/whiteboard/internal/board"
	"github.com/inamate/whiteboard/internal/document"
	"github.com/inamate/whiteboard/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypePointer = "input.pointer"
	TypeWheel   = "input.wheel"
	TypeTool    = "input.tool"
	TypeZoom    = "input.zoom"
	TypeReplace = "board.replace"

	// Server to client
	TypeWelcome  = "welcome"
	TypeSync     = "board.sync"
	TypeOpApply  = "op.apply"
	TypeViewport = "viewport"
	TypeError    = "error"
)

const (
	PhaseDown = "down"
	PhaseMove = "move"
	PhaseUp   = "up"
)

type PointerPayload struct {
	Phase string `json:"phase"`
	engine.PointerEvent
}

type ToolPayload struct {
	Tool engine.Tool `json:"tool"`
}

type ZoomPayload struct {
	Direction engine.ZoomDirection `json:"direction"`
}

type ReplacePayload struct {
	Board document.Board `json:"board"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId,omitempty"`
	BoardID   string `json:"boardId"`
}

type SyncPayload struct {
	Board    *document.Board `json:"board"`
	Viewport engine.Viewport `json:"viewport"`
	Tool     engine.Tool     `json:"tool"`
}

type OpApplyPayload struct {
	Ops []board.Op `json:"ops"`
}

type ViewportPayload struct {
	Viewport engine.Viewport `json:"viewport"`
	Spacing  float64         `json:"spacing"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeBadMessage  = "bad_message"
	CodeBadPayload  = "bad_payload"
	CodeRejected    = "rejected"
	CodeUnknownType = "unknown_type"
)

func newMessage(typ, sessionID string, seq int64, payload any) Message {
	data, _ := json.Marshal(payload)
	return Message{Type: typ, SessionID: sessionID, Seq: seq, Payload: data}
}
