package hub

import (
	"sync"

	"github.com/chirp-social/internal/models"
)

const sendBuffer = 16

// Hub fans newly posted messages out to live feed subscribers. Each
// subscriber names the authors it wants (itself plus everyone it follows),
// so delivery respects the same direction as the home timeline.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

// Subscriber is one live feed connection
type Subscriber struct {
	userID  uint
	authors map[uint]struct{}
	send    chan models.MessageView
}

// New creates an empty Hub
func New() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a connection for the given user. authorIDs lists
// the users whose messages should be delivered.
func (h *Hub) Subscribe(userID uint, authorIDs []uint) *Subscriber {
	sub := &Subscriber{
		userID:  userID,
		authors: make(map[uint]struct{}, len(authorIDs)),
		send:    make(chan models.MessageView, sendBuffer),
	}
	for _, id := range authorIDs {
		sub.authors[id] = struct{}{}
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes a connection and closes its channel
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
	h.mu.Unlock()
}

// Publish delivers a message to every subscriber following its author.
// Slow subscribers with a full buffer miss the message rather than block
// the poster.
func (h *Hub) Publish(view models.MessageView) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		if _, ok := sub.authors[view.UserID]; !ok {
			continue
		}
		select {
		case sub.send <- view:
		default:
		}
	}
}

// C returns the channel messages are delivered on. It is closed on
// Unsubscribe.
func (s *Subscriber) C() <-chan models.MessageView {
	return s.send
}

// SubscriberCount reports the number of live connections
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
