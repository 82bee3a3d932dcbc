package calendar

import (
	"sync"
	"time"
)

// StatusCache holds per-user "is the calendar connected" values derived from
// CheckConnection, cached briefly and invalidated on auth-state changes.
// It replaces ad hoc connection flags scattered through caller state.
type StatusCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]statusEntry
}

type statusEntry struct {
	connected bool
	expires   time.Time
}

// NewStatusCache creates a cache whose entries live for ttl.
func NewStatusCache(ttl time.Duration) *StatusCache {
	return &StatusCache{
		ttl:     ttl,
		entries: make(map[string]statusEntry),
	}
}

// Get returns the cached value for userID and whether it is still fresh.
func (c *StatusCache) Get(userID string) (connected, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.entries[userID]
	if !found || time.Now().After(entry.expires) {
		return false, false
	}
	return entry.connected, true
}

// Set records the derived connection state for userID.
func (c *StatusCache) Set(userID string, connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = statusEntry{connected: connected, expires: time.Now().Add(c.ttl)}
}

// Invalidate drops userID's entry, forcing the next read to probe again.
func (c *StatusCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
