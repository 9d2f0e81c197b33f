package chargers

import (
	"fmt"
	"sync"
	"time"
)

// NearbyCache is an in-memory TTL cache for radius search results. Nearby
// queries from map panning hit the same few tiles repeatedly, so results are
// cached on a rounded-coordinate key.
type NearbyCache struct {
	data    map[string]*cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
	cleanup *time.Ticker
	done    chan struct{}
}

type cacheEntry struct {
	value      []NearbyCharger
	expiration time.Time
}

// NewNearbyCache creates a new nearby-result cache.
func NewNearbyCache(ttl time.Duration) *NearbyCache {
	cache := &NearbyCache{
		data:    make(map[string]*cacheEntry),
		ttl:     ttl,
		cleanup: time.NewTicker(time.Minute),
		done:    make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

// Key buckets a query to roughly 100m so nearby pans share cache entries.
func (c *NearbyCache) Key(q NearbyQuery) string {
	return fmt.Sprintf("nearby:%.3f:%.3f:%.1f:%d", q.Latitude, q.Longitude, q.RadiusKM, q.Limit)
}

// Get retrieves cached results for a key.
func (c *NearbyCache) Get(key string) ([]NearbyCharger, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.value, true
}

// Set stores results for a key.
func (c *NearbyCache) Set(key string, value []NearbyCharger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &cacheEntry{
		value:      value,
		expiration: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries. Called when charger state changes so stale
// statuses are not served.
func (c *NearbyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]*cacheEntry)
}

// Size returns the number of entries in the cache.
func (c *NearbyCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

// Stop terminates the cleanup goroutine.
func (c *NearbyCache) Stop() {
	c.cleanup.Stop()
	close(c.done)
}

func (c *NearbyCache) cleanupLoop() {
	for {
		select {
		case <-c.cleanup.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *NearbyCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, key)
		}
	}
}
