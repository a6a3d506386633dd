package session

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/whiteboard/internal/document"
)

// Handler upgrades /ws/board/{boardId} requests into editing sessions.
type Handler struct {
	hub     *Hub
	load    Loader
	origins []string
	tick    time.Duration
	opts    Options
}

func NewHandler(hub *Hub, load Loader, origins []string, tick time.Duration, opts Options) *Handler {
	return &Handler{hub: hub, load: load, origins: origins, tick: tick, opts: opts}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	b, err := h.load(boardID)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrBadFixtureName):
			http.Error(w, "invalid board id", http.StatusBadRequest)
		case errors.Is(err, fs.ErrNotExist):
			http.Error(w, "board not found", http.StatusNotFound)
		default:
			slog.Error("load board", "board", boardID, "error", err)
			http.Error(w, "failed to load board", http.StatusInternalServerError)
		}
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := NewClient(h.hub, conn, New(b, h.opts), uuid.New().String(), h.tick)
	if !h.hub.Register(client, cancel) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go client.WritePump(ctx)
	go client.Run(ctx)
	client.ReadPump(ctx)
}
