package resolver

import (
	"sync"
	"time"

	"investmenttracker/internal/model"
)

// entry stores one cached lookup result with its fetch time.
type entry struct {
	fetchedAt time.Time
	result    model.PriceResult
}

// Cache is a mutex-guarded TTL cache for price results, keyed by the
// normalized raw ticker. Entries are overwritten wholesale on refresh.
// Placeholder (zero-price) results are cached like successes so failing
// tickers do not hammer the upstream sources. Size is bounded: when the
// map exceeds maxEntries, expired entries are evicted first, then
// arbitrary ones.
type Cache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source. Used by tests to step through the
// TTL without sleeping.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a cache with the given TTL and size bound. A
// non-positive maxEntries disables the bound.
func NewCache(ttl time.Duration, maxEntries int, opts ...CacheOption) *Cache {
	c := &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached result for key when its entry is still fresh.
// Stale entries are ignored but left in place; the next Put overwrites them.
func (c *Cache) Get(key string) (model.PriceResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return model.PriceResult{}, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		return model.PriceResult{}, false
	}
	return e.result, true
}

// Put stores a result under key, overwriting any previous entry.
func (c *Cache) Put(key string, result model.PriceResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{fetchedAt: c.now(), result: result}

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictLocked()
	}
}

// Len returns the number of entries currently held, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked trims the map under c.mu: expired entries go first, then
// arbitrary ones until the bound is met.
func (c *Cache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if len(c.entries) <= c.maxEntries {
			return
		}
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) <= c.maxEntries {
			return
		}
		delete(c.entries, k)
	}
}
