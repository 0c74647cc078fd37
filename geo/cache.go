package geo

import (
	"sync"
	"time"

	"github.com/paulmach/orb"
)

type cacheEntry struct {
	point      orb.Point
	insertedAt time.Time
	ttl        time.Duration
}

// Cache is a process-wide read-through store of resolved coordinates.
// Entries expire after their TTL and are then treated as absent, never
// returned stale. Construct one and inject it; there is no package-level
// instance.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// NewCacheWithClock is for tests that need to drive expiry.
func NewCacheWithClock(now func() time.Time) *Cache {
	c := NewCache()
	c.now = now
	return c
}

// GetOrResolve returns the cached coordinate for key if a non-expired entry
// exists, without invoking resolve. Otherwise it calls resolve, stores the
// result under key with the given TTL, and returns it. resolve runs outside
// the lock; two concurrent misses on one key may both resolve and the last
// write wins, which is fine because the recomputed value is equivalent.
func (c *Cache) GetOrResolve(key string, ttl time.Duration, resolve func() (orb.Point, error)) (orb.Point, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(e.insertedAt.Add(e.ttl)) {
		return e.point, nil
	}

	p, err := resolve()
	if err != nil {
		return orb.Point{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{point: p, insertedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
	return p, nil
}

// Len reports the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
