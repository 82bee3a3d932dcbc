package session

import "sync"

// TokenCache remembers the most recent provider access token seen per user,
// letting the scheduler retry pending calendar syncs without a live request.
// Entries are dropped on auth-state changes (sign-in, reconnect, sign-out).
type TokenCache struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewTokenCache creates an empty cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{tokens: make(map[string]string)}
}

// Put stores the token for userID. Empty tokens are ignored.
func (c *TokenCache) Put(userID, token string) {
	if token == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[userID] = token
}

// Get returns the cached token for userID, if any.
func (c *TokenCache) Get(userID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	token, ok := c.tokens[userID]
	return token, ok
}

// Drop removes userID's cached token.
func (c *TokenCache) Drop(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, userID)
}
