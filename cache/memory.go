package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory Store implementation.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	policy  Policy
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewMemory creates a new in-memory store with the given policy.
func NewMemory[V any](policy Policy) *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]*entry[V]),
		policy:  policy,
	}
}

// Get retrieves a value from the cache. Returns (zero, false) on miss or expiry.
func (c *Memory[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		// Expired - clean up lazily
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Set stores a value with the given TTL, clamped by the policy.
// TTL<=0 falls back to the policy default; a zero policy disables caching.
func (c *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	ttl = c.policy.EffectiveTTL(ttl)
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	c.entries[key] = &entry[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()

	return nil
}

// Delete removes a value from the cache. Idempotent - no error on miss.
func (c *Memory[V]) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Ensure Memory implements Store
var _ Store[any] = (*Memory[any])(nil)
