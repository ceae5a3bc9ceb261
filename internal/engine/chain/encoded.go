package chain

import (
	"context"
	"slices"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
)

var _ ports.Resolver = (*EncodedResolver)(nil)

// EncodedResolver substitutes pre-encoded variants ("app.js.br", "app.js.gz") of a
// resolved resource when the request accepts their content coding.
type EncodedResolver struct {
	encodings []string
}

// NewEncodedResolver creates a resolver trying encodings in the given preference order.
// With no arguments domain.SupportedEncodings is used.
func NewEncodedResolver(encodings ...string) *EncodedResolver {
	if len(encodings) == 0 {
		encodings = domain.SupportedEncodings
	}
	return &EncodedResolver{encodings: slices.Clone(encodings)}
}

// Resolve resolves the original through next and swaps in the first accepted encoded variant.
func (r *EncodedResolver) Resolve(
	ctx context.Context, req domain.ResourceRequest, next ports.ResolverChain,
) (*domain.Resource, error) {
	res, err := next.Resolve(ctx, req)
	if err != nil || res == nil {
		return nil, err
	}

	for _, enc := range r.encodings {
		ext := domain.EncodingExtension(enc)
		if ext == "" || !req.Accepts(enc) {
			continue
		}

		variant, err := next.Resolve(ctx, req.WithPath(res.Path+ext).WithoutEncodings())
		if err != nil {
			return nil, err
		}
		if variant != nil {
			return res.WithEncoding(enc, variant.Content), nil
		}
	}

	return res, nil
}

// ResolveURLPath delegates to next; encodings do not show up in URLs.
func (r *EncodedResolver) ResolveURLPath(ctx context.Context, resourcePath string, next ports.ResolverChain) (string, error) {
	return next.ResolveURLPath(ctx, resourcePath)
}
