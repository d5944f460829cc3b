package realtime

import (
	"log"
	"sync"
)

// Event is the envelope pushed to clients.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// client is one authenticated connection. The send channel is drained by a
// single writer goroutine; a full buffer drops the event rather than block
// the sender.
type client struct {
	userID string
	role   string
	send   chan Event
}

// Hub tracks open realtime connections. A user may hold several connections
// (multiple tabs); each gets its own send queue. Broadcast is fire-and-forget
// with no delivery acknowledgment.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
	}
}

const sendBuffer = 16

func (h *Hub) register(userID, role string) *client {
	c := &client{
		userID: userID,
		role:   role,
		send:   make(chan Event, sendBuffer),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ConnectionCount returns the number of open connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NotifyUser pushes an event to every connection held by one user.
func (h *Hub) NotifyUser(userID, event string, payload any) {
	h.push(event, payload, func(c *client) bool { return c.userID == userID })
}

// NotifyRole pushes an event to every connection whose principal holds role.
func (h *Hub) NotifyRole(role, event string, payload any) {
	h.push(event, payload, func(c *client) bool { return c.role == role })
}

// Broadcast pushes an event to every open connection.
func (h *Hub) Broadcast(event string, payload any) {
	h.push(event, payload, func(*client) bool { return true })
}

func (h *Hub) push(event string, payload any, match func(*client) bool) {
	ev := Event{Event: event, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.send <- ev:
		default:
			// Slow consumer; the event is lost for this connection.
			log.Printf("realtime: dropping %q for user %s (send buffer full)", event, c.userID)
		}
	}
}
