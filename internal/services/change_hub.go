package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/huangang/teamboard/internal/metrics"
)

// ChangeEvent announces that the dashboard state committed an action.
type ChangeEvent struct {
	Seq    uint64    `json:"seq"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// ChangeHub fans change events out to stream clients.
type ChangeHub struct {
	clients map[string]chan ChangeEvent
	mu      sync.RWMutex
	seq     atomic.Uint64
}

func NewChangeHub() *ChangeHub {
	return &ChangeHub{
		clients: make(map[string]chan ChangeEvent),
	}
}

// Subscribe registers clientID and returns its event channel.
func (h *ChangeHub) Subscribe(clientID string) <-chan ChangeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan ChangeEvent, 100)
	if old, ok := h.clients[clientID]; ok {
		close(old)
	}
	h.clients[clientID] = ch
	metrics.StreamClients.Set(float64(len(h.clients)))
	return ch
}

func (h *ChangeHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
	metrics.StreamClients.Set(float64(len(h.clients)))
}

// Publish stamps the next sequence number on an event for action and
// sends it to every client. Clients with a full buffer miss the event.
func (h *ChangeHub) Publish(action string) ChangeEvent {
	ev := ChangeEvent{Seq: h.seq.Add(1), Action: action, At: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

func (h *ChangeHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
