// Package sse streams the public drop feed to browsers over Server-Sent
// Events. Services publish to the internal event bus; the Subscriber
// translates those events into feed payloads and the Hub fans them out.
package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub fans feed events out to connected SSE clients. Registration and
// removal take the lock directly; only broadcasts go through the fan-out
// goroutine so a slow client never blocks a case opening.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	feed     chan Event
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewHub creates a hub with an empty client set.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		feed:     make(chan Event, BroadcastBufferSize),
		shutdown: make(chan struct{}),
	}
}

// Start launches the fan-out goroutine.
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.fanout()
}

// Stop terminates the fan-out goroutine and closes every client channel.
func (h *Hub) Stop() {
	close(h.shutdown)
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		close(client.EventChannel)
	}
	h.clients = make(map[string]*Client)
}

func (h *Hub) fanout() {
	defer h.wg.Done()

	for {
		select {
		case evt := <-h.feed:
			h.deliver(evt)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.EventFilter != nil && !client.EventFilter[evt.Type] {
			continue
		}

		// Non-blocking send; a client with a full buffer misses the
		// event rather than stalling the feed.
		select {
		case client.EventChannel <- evt:
		default:
		}
	}
}

// Register adds a client and returns it. An empty eventTypes slice
// subscribes the client to every feed event.
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		done:         make(chan struct{}),
	}

	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	return client
}

// Unregister removes a client and closes its channel. Safe to call for an
// already removed client.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for fan-out. If the feed buffer is full the
// event is dropped; the feed is best-effort.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.feed <- evt:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an event for the wire:
// "id: <id>\nevent: <type>\ndata: <json>\n\n"
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	msg := "id: " + evt.ID + "\n"
	msg += "event: " + evt.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
