package ports

import "go.trai.ch/assetd/internal/core/domain"

// CacheClearer is anything that can drop all cached resolution results.
type CacheClearer interface {
	Clear()
}

// ResolutionCache maps cache keys to resolved resources.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResolutionCache interface {
	CacheClearer

	// Get returns the cached resource for the key.
	Get(key domain.CacheKey) (*domain.Resource, bool)

	// Put stores a resolved resource.
	Put(key domain.CacheKey, res *domain.Resource)
}
