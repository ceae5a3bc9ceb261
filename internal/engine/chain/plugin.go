package chain

import (
	"context"
	"errors"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*PluginResolver)(nil)

// PluginResolver locates resources owned by plugins. The first path segment names
// the plugin, the remainder is the path inside it.
type PluginResolver struct {
	store ports.ResourceStore
}

// NewPluginResolver creates a resolver reading from store.
func NewPluginResolver(store ports.ResourceStore) *PluginResolver {
	return &PluginResolver{store: store}
}

// Resolve returns the plugin resource or delegates to next when no loaded plugin provides it.
func (r *PluginResolver) Resolve(
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

// ResolveURLPath returns resourcePath unchanged when a plugin provides it.
func (r *PluginResolver) ResolveURLPath(ctx context.Context, resourcePath string, next ports.ResolverChain) (string, error) {
	_, found, err := r.lookup(ctx, resourcePath)
	if err != nil {
		return "", err
	}
	if !found {
		return next.ResolveURLPath(ctx, resourcePath)
	}
	return resourcePath, nil
}

func (r *PluginResolver) lookup(ctx context.Context, p string) ([]byte, bool, error) {
	pluginID, residual, ok := domain.SplitPluginPath(p)
	if !ok {
		return nil, false, nil
	}

	content, found, err := r.store.Lookup(ctx, pluginID, residual)
	if err != nil {
		// The plugin went away mid-lookup; treat it like any other miss.
		if errors.Is(err, domain.ErrPluginUnavailable) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.With(
			zerr.Wrap(storeFailure(err), "failed to look up plugin resource"),
			"plugin", pluginID), "path", residual)
	}
	return content, found, nil
}

// storeFailure classifies a store error. Cancellation and deadlines belong to the
// caller and are passed through; anything else is an adapter failure.
func storeFailure(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Join(domain.ErrAdapterFailure, err)
}
