package sse

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/render"
)

// DefaultBufferSize is the buffer size for per-connection message channels.
// A client that lets its queue fill up is dropped.
const DefaultBufferSize = 32

// Client is one connection's outbound queue
type Client struct {
	Handle    string
	messages  chan models.Message
	done      chan struct{}
	closeOnce sync.Once
}

// Messages returns the queue the transport drains
func (c *Client) Messages() <-chan models.Message {
	return c.messages
}

// Done is closed once the hub drops the client (disconnect or full queue)
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Hub fans outbound events out to connected clients. Sends never block:
// callers deliver while holding the table lock.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // handle -> client
	buffer  int
}

// NewHub creates a hub; a non-positive buffer falls back to the default
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &Hub{
		clients: make(map[string]*Client),
		buffer:  buffer,
	}
}

// AddClient registers a queue for handle, replacing any previous one
func (h *Hub) AddClient(handle string) *Client {
	c := &Client{
		Handle:   handle,
		messages: make(chan models.Message, h.buffer),
		done:     make(chan struct{}),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[handle]; ok {
		log.Warn().Str("handle", handle).Msg("hub: replacing existing client")
		old.close()
	}
	h.clients[handle] = c
	return c
}

// RemoveClient drops the queue for handle
func (h *Hub) RemoveClient(handle string) {
	h.mu.Lock()
	c, ok := h.clients[handle]
	delete(h.clients, handle)
	count := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}
	c.close()
	log.Debug().Str("handle", handle).Int("clients", count).Msg("hub: client removed")
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to every client
func (h *Hub) Broadcast(event string, payload any) {
	h.deliver(h.snapshot(""), event, payload)
}

// BroadcastExcept sends an event to every client but one
func (h *Hub) BroadcastExcept(handle, event string, payload any) {
	h.deliver(h.snapshot(handle), event, payload)
}

// Send delivers an event to a single client
func (h *Hub) Send(handle, event string, payload any) {
	h.mu.RLock()
	c, ok := h.clients[handle]
	h.mu.RUnlock()
	if !ok {
		log.Debug().Str("handle", handle).Str("event", event).Msg("hub: send to unknown client")
		return
	}
	h.deliver([]*Client{c}, event, payload)
}

// snapshot collects clients while holding the lock so sends happen without it
func (h *Hub) snapshot(skip string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*Client, 0, len(h.clients))
	for handle, c := range h.clients {
		if handle == skip {
			continue
		}
		clients = append(clients, c)
	}
	return clients
}

func (h *Hub) deliver(clients []*Client, event string, payload any) {
	msg := models.Message{Event: event, Data: render.JSON(payload)}
	sent := 0
	for _, c := range clients {
		select {
		case <-c.done:
			continue
		default:
		}
		select {
		case c.messages <- msg:
			sent++
		default:
			log.Warn().Str("handle", c.Handle).Str("event", event).Msg("hub: queue full, dropping client")
			h.drop(c)
		}
	}
	log.Debug().Str("event", event).Int("sent", sent).Int("clients", len(clients)).Msg("hub: delivered")
}

// drop removes c unless its handle has since been taken by a newer client.
// The transport sees Done and runs its normal disconnect path.
func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	if h.clients[c.Handle] == c {
		delete(h.clients, c.Handle)
	}
	h.mu.Unlock()
	c.close()
}
