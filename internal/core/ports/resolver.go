// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/assetd/internal/core/domain"
)

// ResolverChain is the remainder of a resolution chain as seen by a single resolver.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ResolverChain interface {
	// Resolve resolves the request against the remaining resolvers.
	// It returns nil, nil when no remaining resolver can produce the resource.
	Resolve(ctx context.Context, req domain.ResourceRequest) (*domain.Resource, error)

	// ResolveURLPath returns the public URL path for the given resource path,
	// or an empty string when no remaining resolver can serve it.
	ResolveURLPath(ctx context.Context, resourcePath string) (string, error)
}

// Resolver is a single link of a resolution chain.
type Resolver interface {
	// Resolve either produces the resource, delegates to next, or declines with nil, nil.
	Resolve(ctx context.Context, req domain.ResourceRequest, next ResolverChain) (*domain.Resource, error)

	// ResolveURLPath maps a resource path to its public URL path, delegating to next as needed.
	ResolveURLPath(ctx context.Context, resourcePath string, next ResolverChain) (string, error)
}

// Transformer post-processes a resolved resource.
type Transformer interface {
	// Transform returns the rewritten resource. It must not change the resource path.
	// The chain is provided for resolving URLs of linked resources.
	Transform(ctx context.Context, req domain.ResourceRequest, res *domain.Resource, chain ResolverChain) (*domain.Resource, error)
}
