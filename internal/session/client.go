package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 4 << 20 // board.replace carries a whole board
)

// Client connects one websocket to one session. ReadPump decodes incoming
// messages, Run owns the session, WritePump serializes replies.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	session  *Session
	send     chan []byte
	inbox    chan Message
	tick     time.Duration
	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, session *Session, clientID string, tick time.Duration) *Client {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	return &Client{
		hub:      hub,
		conn:     conn,
		session:  session,
		send:     make(chan []byte, 256),
		inbox:    make(chan Message, 64),
		tick:     tick,
		ClientID: clientID,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.Send(newMessage(TypeError, c.session.ID, 0, ErrorPayload{Code: CodeBadMessage, Message: err.Error()}))
			continue
		}

		select {
		case c.inbox <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// Run feeds client messages and debounce ticks to the session until ctx is
// done. It is the only goroutine touching the session.
func (c *Client) Run(ctx context.Context) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for _, m := range c.session.Start(c.ClientID) {
		c.Send(m)
	}

	for {
		select {
		case msg := <-c.inbox:
			for _, m := range c.session.Handle(msg) {
				c.Send(m)
			}
		case <-ticker.C:
			for _, m := range c.session.Tick() {
				c.Send(m)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID, "type", msg.Type)
	}
}
