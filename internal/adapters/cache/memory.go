// Package cache implements resolution caches for the asset chain.
package cache

import (
	"sync"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
)

var _ ports.ResolutionCache = (*MemoryCache)(nil)

// MemoryCache implements ports.ResolutionCache using an unbounded in-process map.
// Entries live until Clear is called.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[domain.CacheKey]*domain.Resource
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[domain.CacheKey]*domain.Resource),
	}
}

// Get retrieves the resource cached under key.
func (c *MemoryCache) Get(key domain.CacheKey) (*domain.Resource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[key]
	return res, ok
}

// Put stores a resolved resource. Nil resources are ignored.
func (c *MemoryCache) Put(key domain.CacheKey, res *domain.Resource) {
	if res == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

// Clear drops every entry.
// The map is replaced rather than emptied so readers never observe a partially cleared state.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[domain.CacheKey]*domain.Resource)
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
