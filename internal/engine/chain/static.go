package chain

import (
	"context"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*StaticResolver)(nil)

// StaticResolver serves resources from the host's own static store, consulted
// for paths no plugin owns.
type StaticResolver struct {
	store ports.ResourceStore
}

// NewStaticResolver creates a resolver reading from store with an empty plugin id.
func NewStaticResolver(store ports.ResourceStore) *StaticResolver {
	return &StaticResolver{store: store}
}

// Resolve returns the static resource or delegates to next.
func (r *StaticResolver) Resolve(
	ctx context.Context, req domain.ResourceRequest, next ports.ResolverChain,
) (*domain.Resource, error) {
	content, found, err := r.lookup(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if !found {
		return next.Resolve(ctx, req)
	}
	return &domain.Resource{Path: req.Path, Content: content}, nil
}

// ResolveURLPath returns resourcePath unchanged when the static store provides it.
func (r *StaticResolver) ResolveURLPath(ctx context.Context, resourcePath string, next ports.ResolverChain) (string, error) {
	_, found, err := r.lookup(ctx, resourcePath)
	if err != nil {
		return "", err
	}
	if !found {
		return next.ResolveURLPath(ctx, resourcePath)
	}
	return resourcePath, nil
}

func (r *StaticResolver) lookup(ctx context.Context, p string) ([]byte, bool, error) {
	content, found, err := r.store.Lookup(ctx, "", p)
	if err != nil {
		return nil, false, zerr.With(
			zerr.Wrap(storeFailure(err), "failed to look up static resource"),
			"path", p)
	}
	return content, found, nil
}
