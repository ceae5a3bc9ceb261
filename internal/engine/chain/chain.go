// Package chain implements the asset resolution chain and its resolvers and transformers.
package chain

import (
	"context"
	"slices"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResolverChain = (*Chain)(nil)

// Chain walks an ordered list of resolvers and applies transformers to what they produce.
// A Chain is immutable after construction and safe for concurrent use.
type Chain struct {
	resolvers    []ports.Resolver
	transformers []ports.Transformer
}

// New creates a chain from resolvers in delegation order and transformers in application order.
func New(resolvers []ports.Resolver, transformers []ports.Transformer) *Chain {
	return &Chain{
		resolvers:    slices.Clone(resolvers),
		transformers: slices.Clone(transformers),
	}
}

// Resolve resolves the request and returns nil, nil when no resolver can produce it.
func (c *Chain) Resolve(ctx context.Context, req domain.ResourceRequest) (*domain.Resource, error) {
	p, ok := domain.NormalizePath(req.Path)
	if !ok {
		return nil, nil
	}
	req = req.WithPath(p)

	res, err := c.resolverChain().Resolve(ctx, req)
	if err != nil || res == nil {
		return nil, err
	}
	return c.transform(ctx, req, res)
}

// ResolveURLPath returns the public URL path for resourcePath, or "" when no resolver can serve it.
func (c *Chain) ResolveURLPath(ctx context.Context, resourcePath string) (string, error) {
	p, ok := domain.NormalizePath(resourcePath)
	if !ok {
		return "", nil
	}
	return c.resolverChain().ResolveURLPath(ctx, p)
}

// resolverChain returns the resolver-only view of the chain handed to transformers.
func (c *Chain) resolverChain() remainder {
	return remainder{resolvers: c.resolvers}
}

func (c *Chain) transform(ctx context.Context, req domain.ResourceRequest, res *domain.Resource) (*domain.Resource, error) {
	for _, t := range c.transformers {
		out, err := t.Transform(ctx, req, res, c.resolverChain())
		if err != nil {
			return nil, err
		}
		if out == nil || out.Path != res.Path {
			return nil, zerr.With(zerr.Wrap(domain.ErrTransformFailed, "transformer changed the resource path"),
				"path", res.Path)
		}
		res = out
	}
	return res, nil
}

// remainder is the part of the chain after a given resolver.
type remainder struct {
	resolvers []ports.Resolver
}

func (r remainder) Resolve(ctx context.Context, req domain.ResourceRequest) (*domain.Resource, error) {
	if len(r.resolvers) == 0 {
		return nil, nil
	}
	return r.resolvers[0].Resolve(ctx, req, remainder{resolvers: r.resolvers[1:]})
}

func (r remainder) ResolveURLPath(ctx context.Context, resourcePath string) (string, error) {
	if len(r.resolvers) == 0 {
		return "", nil
	}
	return r.resolvers[0].ResolveURLPath(ctx, resourcePath, remainder{resolvers: r.resolvers[1:]})
}
