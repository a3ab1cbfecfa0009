// Package cache provides a process-wide TTL cache for whole rendered pages.
package cache

import (
	"sync"
	"time"
)

// PageCache stores rendered page bytes keyed by request URI for a fixed
// interval. Within that window repeated requests are served the previously
// rendered bytes even if the underlying data has changed. Entries are only
// invalidated by expiry or an explicit Clear.
type PageCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

type entry struct {
	body        []byte
	contentType string
	expires     time.Time
}

// NewPageCache returns a PageCache whose entries expire after ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached body and content type for key, if present and not
// expired. Expired entries are dropped on access.
func (c *PageCache) Get(key string) ([]byte, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, "", false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, "", false
	}
	return e.body, e.contentType, true
}

// Set stores body under key. Concurrent population of the same key is
// harmless, the last write wins.
func (c *PageCache) Set(key string, body []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		body:        body,
		contentType: contentType,
		expires:     c.now().Add(c.ttl),
	}
}

// Clear drops all entries. Tests that mutate data and expect fresh reads must
// call this.
func (c *PageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
