package api

import (
	"sync"
	"time"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// maxCleanupInterval bounds how long expired entries may linger.
const maxCleanupInterval = 5 * time.Minute

// cacheEntry represents a cached solution.
type cacheEntry struct {
	expiry   time.Time
	solution *model.Solution
}

// solutionCache provides thread-safe caching of solutions keyed by question hash.
type solutionCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	doneCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// newSolutionCache creates a new cache with the specified TTL.
func newSolutionCache(ttl time.Duration) *solutionCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	cache := &solutionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	go cache.cleanup(min(ttl, maxCleanupInterval))

	return cache
}

// get retrieves a solution if it exists and hasn't expired.
func (c *solutionCache) get(key string) (*model.Solution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return nil, false
	}
	return entry.solution, true
}

// set stores a solution in the cache.
func (c *solutionCache) set(key string, solution *model.Solution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		solution: solution,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *solutionCache) cleanup(interval time.Duration) {
	defer close(c.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *solutionCache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
		}
	}
}

// clear drops every entry.
func (c *solutionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// size returns the number of entries in the cache.
func (c *solutionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine and waits for it to exit.
func (c *solutionCache) Close() {
	c.once.Do(func() {
		close(c.stopCh)
		<-c.doneCh
	})
}
