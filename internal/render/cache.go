package render

import "sync"

// DefaultCacheCap is the number of distinct styled resources kept alive.
const DefaultCacheCap = 50

// CacheStats counts cache traffic.
type CacheStats struct {
	Hits      int
	Misses    int
	Evictions int
}

// TextureCache holds rendered resources up to a fixed cap. When full, the
// oldest entry that is not reserved is evicted first. Reserved entries are
// never evicted but count toward the cap.
type TextureCache struct {
	mu      sync.Mutex
	cap     int
	entries map[string]*texture
	order   []string // unreserved keys, oldest first
	stats   CacheStats
}

type texture struct {
	value    string
	reserved bool
}

// NewTextureCache creates a cache; a non-positive cap uses DefaultCacheCap.
func NewTextureCache(limit int) *TextureCache {
	if limit <= 0 {
		limit = DefaultCacheCap
	}
	return &TextureCache{
		cap:     limit,
		entries: make(map[string]*texture),
	}
}

// Get returns a cached resource.
func (c *TextureCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return "", false
	}
	c.stats.Hits++
	return t.value, true
}

// Put stores a resource, evicting the oldest unreserved entry when full.
// It returns false when every slot is reserved and nothing was stored.
func (c *TextureCache) Put(key, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(key, value, false)
}

// Reserve stores a resource that is never evicted. An existing entry is
// pinned in place.
func (c *TextureCache) Reserve(key, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(key, value, true)
}

// Unreserve makes a reserved entry evictable again, as the newest entry.
func (c *TextureCache) Unreserve(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.entries[key]
	if !ok || !t.reserved {
		return
	}
	t.reserved = false
	c.order = append(c.order, key)
}

func (c *TextureCache) put(key, value string, reserved bool) bool {
	if t, ok := c.entries[key]; ok {
		t.value = value
		if reserved && !t.reserved {
			t.reserved = true
			c.forget(key)
		}
		return true
	}

	if len(c.entries) >= c.cap {
		if len(c.order) == 0 {
			return false
		}
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.stats.Evictions++
	}

	c.entries[key] = &texture{value: value, reserved: reserved}
	if !reserved {
		c.order = append(c.order, key)
	}
	return true
}

func (c *TextureCache) forget(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Len returns the number of cached resources.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cap returns the cache limit.
func (c *TextureCache) Cap() int {
	return c.cap
}

// Stats returns the traffic counters.
func (c *TextureCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Clear drops every entry, reserved ones included.
func (c *TextureCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*texture)
	c.order = nil
}
