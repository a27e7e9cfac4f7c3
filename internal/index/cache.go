package index

import (
	"sort"
	"sync"
)

// Cache memoizes one ProjectIndex per project id.
//
// There is no TTL and no capacity eviction: an entry persists until
// explicit eviction. Staleness is the caller's responsibility, via
// ContentHash comparison after an external re-fetch or explicit Evict.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*ProjectIndex
}

// CacheStats reports the cache's current contents.
type CacheStats struct {
	// ProjectIDs are the cached project ids, sorted.
	ProjectIDs []string `json:"project_ids"`

	// Size is the number of cached entries.
	Size int `json:"size"`
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*ProjectIndex),
	}
}

// Get returns the cached index for a project id, or nil.
// Get is a pure lookup; it never triggers computation.
func (c *Cache) Get(projectID string) *ProjectIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[projectID]
}

// Put stores an index, unconditionally replacing any existing entry.
func (c *Cache) Put(projectID string, idx *ProjectIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectID] = idx
}

// Evict removes a single project's entry.
func (c *Cache) Evict(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, projectID)
}

// EvictAll removes every entry.
func (c *Cache) EvictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*ProjectIndex)
}

// Stats returns the cached project ids and entry count.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return CacheStats{
		ProjectIDs: ids,
		Size:       len(ids),
	}
}
