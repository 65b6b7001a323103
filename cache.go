package objstore

import "sync"

// readCache is a bounded in-memory payload cache for the local backend.
// Eviction is arbitrary rather than LRU; the cache is an opt-in fast path,
// not a guarantee.
type readCache struct {
	maxEntries int
	items      map[string][]byte
	mu         sync.RWMutex
}

func newReadCache(maxEntries int) *readCache {
	return &readCache{
		maxEntries: maxEntries,
		items:      make(map[string][]byte),
	}
}

func (c *readCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.items[key]
	return data, ok
}

func (c *readCache) add(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; !ok && len(c.items) >= c.maxEntries {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}
	c.items[key] = data
}

func (c *readCache) remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}
