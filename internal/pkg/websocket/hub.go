package websocket

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub tracks the live sessions of each user and delivers notification
// payloads to them. A user can hold several sessions at once (multiple
// tabs or devices); a push goes to all of them.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and removals
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessions, ok := h.clients[client.userID]; ok {
		if _, ok := sessions[client]; ok {
			delete(sessions, client)
			close(client.send)

			if len(sessions) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Notification client unregistered")
		}
	}
}

// SendToUser delivers a payload to all live sessions of a user. Delivery
// is best-effort: a user without sessions is skipped silently, and a
// session with a full send buffer is dropped rather than blocked on.
func (h *Hub) SendToUser(userID int64, payload []byte) {
	h.mu.RLock()
	sessions, ok := h.clients[userID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().Int64("userID", userID).Msg("No live sessions for push")
		return
	}

	var stale []*Client
	for client := range sessions {
		select {
		case client.send <- payload:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn().Int64("userID", userID).Msg("Dropping slow notification client")
		h.unregister <- client
	}
}

// GetClientsCount returns the number of live sessions for a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}
