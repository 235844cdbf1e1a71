package notification

import (
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 32

// Hub fans toasts out to connected admin dashboards.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]chan Toast
}

func NewHub() *Hub {
	return &Hub{streams: map[string]chan Toast{}}
}

// Subscribe registers a dashboard stream and returns its id, the receive
// channel and a cancel function that closes the channel.
func (h *Hub) Subscribe() (string, <-chan Toast, func()) {
	id := uuid.NewString()
	ch := make(chan Toast, subscriberBuffer)

	h.mu.Lock()
	h.streams[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if current, ok := h.streams[id]; ok {
			delete(h.streams, id)
			close(current)
		}
		h.mu.Unlock()
	}
	return id, ch, cancel
}

// Publish delivers t to every subscriber. Slow receivers miss the toast.
func (h *Hub) Publish(t Toast) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for _, ch := range h.streams {
		select {
		case ch <- t:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams)
}
