// Package cache provides a small in-memory TTL cache keyed by logical query
// identity, so repeated dashboard renders within the validity window do not
// re-query the backing data source.
package cache

import (
	"sync"
	"time"
)

// entry holds one cached value. The per-entry mutex serializes fetches for
// the key so that concurrent renders hitting an expired entry do not issue
// duplicate backing reads.
type entry struct {
	mu        sync.Mutex
	value     any
	fetchedAt time.Time
	ready     bool
}

// Cache is a TTL cache with per-key TTL overrides and explicit invalidation.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	ttls       map[string]time.Duration
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a cache with the given default TTL.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]*entry),
		ttls:       make(map[string]time.Duration),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// SetTTL overrides the TTL for one key. Different query classes carry
// different windows (live-market reads expire faster than log reads).
func (c *Cache) SetTTL(key string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls[key] = ttl
}

// GetOrFetch returns the cached value for key, or runs fetch and caches the
// result. A fetch error is returned to the caller and nothing is cached, so
// the next call retries the source.
func (c *Cache) GetOrFetch(key string, fetch func() (any, error)) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	ttl := c.defaultTTL
	if override, ok := c.ttls[key]; ok {
		ttl = override
	}
	c.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready && c.now().Sub(e.fetchedAt) <= ttl {
		return e.value, nil
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	e.value = value
	e.fetchedAt = c.now()
	e.ready = true
	return value, nil
}

// Invalidate forces the next read of the given keys to bypass the cache.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}
