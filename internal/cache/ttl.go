// Package cache provides the two stores shared across parse workers: a
// generic TTL value cache and a block-parse cache keyed by content hash.
// Both are safe for concurrent use; entries are independent and eviction of
// one never affects another.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 10 * time.Minute

// TTLCache is a thread-safe key/value store with per-entry expiry. Reads
// perform a lazy expiry check; CleanupExpired sweeps the whole store.
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]

	// now is replaceable in tests.
	now func() time.Time
}

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// NewTTLCache creates a cache whose entries expire ttl after creation.
// A non-positive ttl falls back to DefaultTTL.
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLCache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired. An expired
// entry is removed on read.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any existing entry. Entries are
// never mutated in place, only replaced.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, createdAt: c.now()}
}

// Remove deletes the entry for key if present.
func (c *TTLCache[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// CleanupExpired removes all expired entries and returns how many were
// evicted.
func (c *TTLCache[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for k, e := range c.entries {
		if now.Sub(e.createdAt) > c.ttl {
			delete(c.entries, k)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored entries, including any not yet swept.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
