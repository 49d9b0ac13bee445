package realtime

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event describes a change to a stored record set. UserID identifies whose
// data changed so subscribers can filter to a single user.
type Event struct {
	Table  string
	UserID string
	Action string // "insert", "update", "delete"
}

// Handler is invoked for every event matching a subscription. Handlers run
// on the publisher's goroutine and must not block.
type Handler func(Event)

type subscription struct {
	table   string
	userID  string // empty matches every user
	handler Handler
}

// Hub is an in-process change notification fan-out. Repositories publish
// after successful writes; interested services subscribe per table and user.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]subscription
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]subscription)}
}

// Subscribe registers a handler for changes to the given table, optionally
// filtered to one user. It returns an opaque handle for Unsubscribe.
func (h *Hub) Subscribe(table, userID string, handler Handler) string {
	handle := uuid.NewString()
	h.mu.Lock()
	h.subs[handle] = subscription{table: table, userID: userID, handler: handler}
	h.mu.Unlock()
	log.Printf("INFO: [RealtimeHub] Subscribed handle=%s table=%s userID=%s", handle, table, userID)
	return handle
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (h *Hub) Unsubscribe(handle string) {
	h.mu.Lock()
	delete(h.subs, handle)
	h.mu.Unlock()
}

// Publish delivers the event to all matching subscribers. Delivery is
// synchronous and in no particular order.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	matched := make([]Handler, 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.table != ev.Table {
			continue
		}
		if sub.userID != "" && sub.userID != ev.UserID {
			continue
		}
		matched = append(matched, sub.handler)
	}
	h.mu.RUnlock()

	for _, handler := range matched {
		handler(ev)
	}
}
