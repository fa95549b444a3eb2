package sse

import "sync"

// Event is one message pushed to a connected client.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub fans events out to per-user subscriber channels. A user may hold
// several connections (multiple tabs), each with its own channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a channel for the user and returns it with a cleanup
// function the caller must invoke when the connection closes.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}
	return ch, cleanup
}

// Publish delivers an event to every open connection of one user. Full
// channels are skipped so a stalled client cannot block the publisher.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) PublishToMany(userIDs []string, event Event) {
	for _, userID := range userIDs {
		ev := event
		ev.UserID = userID
		h.Publish(userID, ev)
	}
}

func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
