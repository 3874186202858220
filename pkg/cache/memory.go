package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultMemorySize bounds the in-memory cache so that long-running
// processes resolving many packages don't grow without limit.
const defaultMemorySize = 4096

// MemoryCache is an in-process cache backed by a bounded LRU map.
// Entries live for the lifetime of the process; the ttl passed to Set is
// ignored. It is the default backend and is safe for concurrent use.
type MemoryCache struct {
	lru *lru.Cache[string, []byte]
}

// NewMemoryCache creates an in-memory cache holding at most size entries.
// A size <= 0 selects a sensible default.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = defaultMemorySize
	}
	c, _ := lru.New[string, []byte](size)
	return &MemoryCache{lru: c}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.lru.Get(key)
	return data, ok, nil
}

// Set stores a value. The ttl is ignored; entries are process-lifetime.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.lru.Add(key, data)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Clear drops all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

// Close does nothing for the memory cache.
func (c *MemoryCache) Close() error { return nil }

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
