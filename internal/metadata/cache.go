package metadata

import (
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a resolution is reused within a session.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	result  *Result
	savedAt time.Time
}

// Cache is an explicitly scoped TTL cache keyed by the exact URL string.
// The clock is injected so expiry is testable.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL. A nil clock uses time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached result for a URL while it is still fresh.
// The same pointer stored by Set is handed back, so repeated resolutions
// of one URL within the window observe the identical object.
func (c *Cache) Get(url string) (*Result, bool) {
	c.mu.RLock()
	entry, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.savedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, url)
		c.mu.Unlock()
		return nil, false
	}
	return entry.result, true
}

// Set stores a result for a URL.
func (c *Cache) Set(url string, result *Result) {
	c.mu.Lock()
	c.entries[url] = cacheEntry{result: result, savedAt: c.now()}
	c.mu.Unlock()
}
