package cache

import (
	"sync"

	"github.com/resumatch/backend/internal/domain"
)

// DefaultCapacity is used when no capacity is configured.
const DefaultCapacity = 100

// FIFOCache is a bounded, insertion-ordered cache for extracted job data.
// When a new key would exceed the capacity, the single oldest surviving key
// is evicted. Entries are never promoted on hit and an overwrite keeps the
// key's original queue position.
type FIFOCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*domain.JobInfo
	order    []string
}

// NewFIFOCache creates a FIFO cache holding at most capacity entries.
func NewFIFOCache(capacity int) *FIFOCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &FIFOCache{
		capacity: capacity,
		entries:  make(map[string]*domain.JobInfo, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Get returns the cached value for key and whether it was present.
func (c *FIFOCache) Get(key string) (*domain.JobInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.entries[key]
	return info, ok
}

// Put stores value under key. A put on an existing key overwrites the value
// without changing its eviction priority. A put on a new key at capacity
// evicts the earliest-inserted key first.
func (c *FIFOCache) Put(key string, info *domain.JobInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = info
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = info
	c.order = append(c.order, key)
}

// Len returns the current number of cached entries.
func (c *FIFOCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
