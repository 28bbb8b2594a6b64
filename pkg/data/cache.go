package data

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value   []byte
	expires time.Time
}

// MemoryCache implements Cache using in-memory storage with per-entry
// TTL. Expired entries are evicted lazily on the next read.
type MemoryCache struct {
	entries map[string]cacheEntry
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewMemoryCache creates a new in-memory TTL cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get retrieves a value from cache if present and not expired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}
	if c.now().After(entry.expires) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	// Return a copy to prevent external modifications
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, true
}

// Set stores a value with the given TTL.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	cached := make([]byte, len(value))
	copy(cached, value)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[key] = cacheEntry{value: cached, expires: c.now().Add(ttl)}
}

// Clear removes all cached entries.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Size returns the number of cached entries, including any not yet
// lazily evicted.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// NopCache is a Cache that stores nothing. Used to disable caching in
// tests.
type NopCache struct{}

func (NopCache) Get(string) ([]byte, bool)         { return nil, false }
func (NopCache) Set(string, []byte, time.Duration) {}
func (NopCache) Clear()                            {}
func (NopCache) Size() int                         { return 0 }
