package chain

import (
	"context"
	"strconv"
	"sync"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

var (
	_ ports.ResolverChain = (*CachedChain)(nil)
	_ ports.CacheClearer  = (*CachedChain)(nil)
)

// CachedChain serves resolutions from a cache and fills it on misses.
// Concurrent misses for the same key within one cache generation share a single
// resolution. The shared resolution keeps the values of the first caller's context
// but not its cancellation, so one caller going away does not fail the others.
// A resolution that began before Clear never stores its result.
type CachedChain struct {
	chain ports.ResolverChain
	cache ports.ResolutionCache
	group singleflight.Group

	// mu orders cache stores against Clear; resolutions run outside it.
	mu         sync.RWMutex
	generation uint64
}

// NewCachedChain wraps chain with cache.
func NewCachedChain(chain ports.ResolverChain, cache ports.ResolutionCache) *CachedChain {
	return &CachedChain{chain: chain, cache: cache}
}

// Resolve returns the cached resource for the request or resolves and caches it.
// NotFound results and failures are not cached.
func (c *CachedChain) Resolve(ctx context.Context, req domain.ResourceRequest) (*domain.Resource, error) {
	p, ok := domain.NormalizePath(req.Path)
	if !ok {
		return nil, nil
	}
	req = req.WithPath(p)
	key := domain.NewCacheKey(req)

	if res, ok := c.cache.Get(key); ok {
		return res, nil
	}

	gen := c.currentGeneration()
	flightKey := strconv.FormatUint(gen, 10) + "|" + key.String()

	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		res, err := c.chain.Resolve(context.WithoutCancel(ctx), req)
		if err != nil || res == nil {
			return res, err
		}
		c.store(gen, key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	res, _ := v.(*domain.Resource)
	return res, nil
}

// ResolveURLPath delegates to the wrapped chain. URL paths are not cached.
func (c *CachedChain) ResolveURLPath(ctx context.Context, resourcePath string) (string, error) {
	return c.chain.ResolveURLPath(ctx, resourcePath)
}

// Clear drops every cached resolution and starts a new generation.
func (c *CachedChain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.cache.Clear()
}

func (c *CachedChain) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// store caches res unless a Clear happened since generation gen began.
func (c *CachedChain) store(gen uint64, key domain.CacheKey, res *domain.Resource) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.generation == gen {
		c.cache.Put(key, res)
	}
}
