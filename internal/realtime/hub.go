package realtime

import (
	"log/slog"
	"sync"
)

const subscriberBuffer = 16

// Subscriber receives change events for one trip (or for all trips when
// subscribed with an empty trip ID).
type Subscriber struct {
	C      chan Event
	tripID string
}

// Hub fans change events out to in-process subscribers. Publish never blocks:
// a subscriber that falls behind has events dropped on its channel.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	closed bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a subscriber for the given trip. An empty tripID
// subscribes to every trip's events.
func (h *Hub) Subscribe(tripID string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan Event, subscriberBuffer),
		tripID: tripID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.C)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.C)
}

// Publish delivers an event to every matching subscriber
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	for sub := range h.subs {
		if sub.tripID != "" && sub.tripID != e.TripID {
			continue
		}
		select {
		case sub.C <- e:
		default:
			slog.Warn("subscriber channel full, dropping event",
				"trip_id", e.TripID, "table", e.Table, "action", e.Action)
		}
	}
}

// Close shuts the hub down and closes all subscriber channels
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.C)
	}
}
