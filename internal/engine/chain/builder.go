package chain

import (
	"context"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResolverChain = (*Pipeline)(nil)

// Pipeline is an assembled resolution chain, optionally fronted by a cache.
type Pipeline struct {
	chain  *Chain
	cached *CachedChain
	kinds  []domain.ResolverKind
}

// Resolve resolves the request through the cache when one is configured.
func (p *Pipeline) Resolve(ctx context.Context, req domain.ResourceRequest) (*domain.Resource, error) {
	if p.cached != nil {
		return p.cached.Resolve(ctx, req)
	}
	return p.chain.Resolve(ctx, req)
}

// ResolveURLPath returns the public URL path for resourcePath.
func (p *Pipeline) ResolveURLPath(ctx context.Context, resourcePath string) (string, error) {
	return p.chain.ResolveURLPath(ctx, resourcePath)
}

// Cache returns the cache guard to invalidate on lifecycle events, or nil when
// caching is disabled.
func (p *Pipeline) Cache() ports.CacheClearer {
	if p.cached == nil {
		return nil
	}
	return p.cached
}

// Resolvers returns the resolver kinds in delegation order.
func (p *Pipeline) Resolvers() []domain.ResolverKind {
	return append([]domain.ResolverKind(nil), p.kinds...)
}

// Option configures Build.
type Option func(*builder)

// WithCache supplies the resolution cache used when caching is enabled.
func WithCache(cache ports.ResolutionCache) Option {
	return func(b *builder) { b.cache = cache }
}

// WithStaticStore supplies the host static store used by the static fallback.
func WithStaticStore(store ports.ResourceStore) Option {
	return func(b *builder) { b.static = store }
}

// WithHasher supplies the digest used by content versions and manifests.
func WithHasher(hasher ports.ContentHasher) Option {
	return func(b *builder) { b.hasher = hasher }
}

// WithLogger supplies the logger used by resolvers.
func WithLogger(logger ports.Logger) Option {
	return func(b *builder) { b.logger = logger }
}

type builder struct {
	cache  ports.ResolutionCache
	static ports.ResourceStore
	hasher ports.ContentHasher
	logger ports.Logger
}

// Build assembles the chain described by cfg on top of the plugin store.
// Contradictory or incomplete settings are reported as domain.ErrInvalidConfiguration.
func Build(cfg domain.ChainConfig, plugins ports.ResourceStore, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if plugins == nil {
		return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "plugin store is required")
	}

	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	resolverKinds, transformerKinds := cfg.Plan()

	resolvers := make([]ports.Resolver, 0, len(resolverKinds))
	for _, kind := range resolverKinds {
		r, err := b.resolver(kind, cfg, plugins)
		if err != nil {
			return nil, zerr.With(err, "resolver", kind.String())
		}
		resolvers = append(resolvers, r)
	}

	transformers := make([]ports.Transformer, 0, len(transformerKinds))
	for _, kind := range transformerKinds {
		t, err := b.transformer(kind)
		if err != nil {
			return nil, zerr.With(err, "transformer", kind.String())
		}
		transformers = append(transformers, t)
	}

	p := &Pipeline{
		chain: New(resolvers, transformers),
		kinds: resolverKinds,
	}
	if cfg.Cache {
		if b.cache == nil {
			return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "cache enabled but no cache supplied")
		}
		p.cached = NewCachedChain(p.chain, b.cache)
	}
	return p, nil
}

func (b *builder) resolver(kind domain.ResolverKind, cfg domain.ChainConfig, plugins ports.ResourceStore) (ports.Resolver, error) {
	switch kind {
	case domain.ResolverEncoded:
		return NewEncodedResolver(), nil
	case domain.ResolverVersion:
		return b.versionResolver(cfg)
	case domain.ResolverPlugin:
		return NewPluginResolver(plugins), nil
	case domain.ResolverStatic:
		if b.static == nil {
			return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "static fallback enabled but no static store supplied")
		}
		return NewStaticResolver(b.static), nil
	default:
		return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "unknown resolver kind")
	}
}

func (b *builder) versionResolver(cfg domain.ChainConfig) (*VersionResolver, error) {
	vr := NewVersionResolver(b.logger)

	if cfg.FixedVersion.Enabled {
		if err := vr.AddFixedVersionStrategy(cfg.FixedVersion.Version, cfg.FixedVersion.Paths...); err != nil {
			return nil, err
		}
	}
	if cfg.ContentVersion.Enabled {
		if b.hasher == nil {
			return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "content version strategy requires a hasher")
		}
		if err := vr.AddContentVersionStrategy(b.hasher, cfg.ContentVersion.Paths...); err != nil {
			return nil, err
		}
	}
	return vr, nil
}

func (b *builder) transformer(kind domain.TransformerKind) (ports.Transformer, error) {
	switch kind {
	case domain.TransformerManifest:
		if b.hasher == nil {
			return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "manifest transformer requires a hasher")
		}
		return NewManifestTransformer(b.hasher), nil
	default:
		return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "unknown transformer kind")
	}
}
