package services

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
)

// DefaultImageCacheSize bounds the in-memory image cache.
const DefaultImageCacheSize = 20

// ImageCache is a bounded FIFO cache of generated images keyed by
// prompt hash. When full, the oldest entry is evicted.
type ImageCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*ImageResult
	order   []string
}

// NewImageCache creates a cache holding at most maxSize results.
func NewImageCache(maxSize int) *ImageCache {
	if maxSize <= 0 {
		maxSize = DefaultImageCacheSize
	}
	return &ImageCache{
		maxSize: maxSize,
		entries: make(map[string]*ImageResult),
		order:   make([]string, 0, maxSize),
	}
}

func cacheKey(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for a prompt, if present.
func (c *ImageCache) Get(prompt string) (*ImageResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[cacheKey(prompt)]
	return result, ok
}

// Put stores a result, evicting the oldest entry when the cache is
// full. Re-putting an existing prompt does not change its position.
func (c *ImageCache) Put(prompt string, result *ImageResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(prompt)
	if _, exists := c.entries[key]; exists {
		c.entries[key] = result
		return
	}

	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = result
	c.order = append(c.order, key)
}

// Len reports the number of cached entries.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
