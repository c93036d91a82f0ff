package devserver

import (
	"strings"
	"sync"
	"time"
)

// pageCache keeps rewritten HTML pages keyed by file path. An entry is only
// served while the file's modification time matches.
type pageCache struct {
	mu      sync.RWMutex
	entries map[string]*pageEntry
	stats   cacheStats
}

type pageEntry struct {
	data    []byte
	modTime time.Time
}

type cacheStats struct {
	Hits          int64
	Misses        int64
	Invalidations int64
}

func newPageCache() *pageCache {
	return &pageCache{entries: make(map[string]*pageEntry)}
}

func (c *pageCache) get(path string, modTime time.Time) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok || !entry.modTime.Equal(modTime) {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return entry.data, true
}

func (c *pageCache) put(path string, modTime time.Time, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = &pageEntry{data: data, modTime: modTime}
}

// invalidate drops path and, when path is a directory, everything below it.
func (c *pageCache) invalidate(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key := range c.entries {
		if key == path || strings.HasPrefix(key, strings.TrimSuffix(path, "/")+"/") {
			delete(c.entries, key)
			count++
		}
	}
	c.stats.Invalidations += int64(count)
	return count
}

func (c *pageCache) snapshot() cacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
