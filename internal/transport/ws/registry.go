package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscription is one live listener against a room, tracked under a logical key.
type Subscription struct {
	Key        string
	RoomID     uuid.UUID
	AttachedAt time.Time
}

// Registry tracks a connection's live subscriptions, at most one per logical
// key. Attaching an existing key detaches the old subscription first, so
// overlapping subscriptions for the same key never coexist.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]Subscription
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]Subscription)}
}

// Attach registers a subscription under its key, replacing any existing one.
// Returns true if a previous subscription was replaced.
func (r *Registry) Attach(key string, roomID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced := r.subs[key]
	r.subs[key] = Subscription{Key: key, RoomID: roomID, AttachedAt: time.Now()}
	return replaced
}

// Detach removes the subscription for key. No-op on unknown keys.
func (r *Registry) Detach(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[key]
	delete(r.subs, key)
	return ok
}

// DetachAll removes every subscription; called on connection teardown.
func (r *Registry) DetachAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.subs)
}

// Covers reports whether any live subscription targets the room.
func (r *Registry) Covers(roomID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.subs {
		if sub.RoomID == roomID {
			return true
		}
	}
	return false
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
