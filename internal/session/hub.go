package session

import (
	"context"
	"log/slog"
	"sync"
)

// Hub tracks live clients so the server can report and shut them down.
// Sessions never share state with each other.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	cancels    map[string]context.CancelFunc
	register   chan registration
	unregister chan *Client
	done       chan struct{}
}

type registration struct {
	client *Client
	cancel context.CancelFunc
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		cancels:    make(map[string]context.CancelFunc),
		register:   make(chan registration),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is done, then cancels every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case reg := <-h.register:
			h.addClient(reg)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return nil
		}
	}
}

// Register adds a client whose goroutines stop when cancel is called. It
// returns false once the hub has stopped.
func (h *Hub) Register(client *Client, cancel context.CancelFunc) bool {
	select {
	case h.register <- registration{client: client, cancel: cancel}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(reg registration) {
	h.mu.Lock()
	h.clients[reg.client.ClientID] = reg.client
	h.cancels[reg.client.ClientID] = reg.cancel
	h.mu.Unlock()

	slog.Info("client joined", "client", reg.client.ClientID, "session", reg.client.session.ID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	cancel, ok := h.cancels[client.ClientID]
	delete(h.clients, client.ClientID)
	delete(h.cancels, client.ClientID)
	h.mu.Unlock()

	if !ok {
		return
	}
	cancel()
	slog.Info("client left", "client", client.ClientID, "session", client.session.ID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, cancel := range h.cancels {
		cancel()
		delete(h.cancels, id)
		delete(h.clients, id)
	}
}
