package cache

import (
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
)

var _ ports.ResolutionCache = (*NoopCache)(nil)

// NoopCache is a ports.ResolutionCache that never stores anything.
type NoopCache struct{}

// NewNoopCache creates a new NoopCache.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

// Get always misses.
func (NoopCache) Get(_ domain.CacheKey) (*domain.Resource, bool) {
	return nil, false
}

// Put does nothing.
func (NoopCache) Put(_ domain.CacheKey, _ *domain.Resource) {}

// Clear does nothing.
func (NoopCache) Clear() {}
