package chain

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*VersionResolver)(nil)

// strategyEntry binds a path pattern to a version strategy.
type strategyEntry struct {
	pattern   string
	globs     []glob.Glob
	wildcards int
	strategy  VersionStrategy
}

func (e *strategyEntry) match(p string) bool {
	for _, g := range e.globs {
		if g.Match("/" + p) {
			return true
		}
	}
	return false
}

// VersionResolver maps versioned URLs onto resources and attaches versions to
// what it resolves. Strategies are selected by path pattern; the most specific
// pattern wins.
type VersionResolver struct {
	entries []*strategyEntry
	logger  ports.Logger
}

// NewVersionResolver creates a resolver with no strategies. logger may be nil.
func NewVersionResolver(logger ports.Logger) *VersionResolver {
	return &VersionResolver{logger: logger}
}

// AddStrategy maps the path patterns to strategy. Patterns use glob syntax with
// '/' as separator and are matched against "/" + resource path.
func (r *VersionResolver) AddStrategy(strategy VersionStrategy, patterns ...string) error {
	for _, pattern := range patterns {
		entry, err := compileEntry(pattern, strategy)
		if err != nil {
			return err
		}
		r.entries = append(r.entries, entry)
	}

	// Fewer wildcards first, then longer patterns; ties keep registration order.
	slices.SortStableFunc(r.entries, func(a, b *strategyEntry) int {
		if c := cmp.Compare(a.wildcards, b.wildcards); c != 0 {
			return c
		}
		return cmp.Compare(len(b.pattern), len(a.pattern))
	})
	return nil
}

// AddFixedVersionStrategy maps patterns to a fixed version prefix. Each pattern is
// also registered with the version prepended so that versioned URLs select the strategy.
func (r *VersionResolver) AddFixedVersionStrategy(version string, patterns ...string) error {
	strategy := NewFixedVersionStrategy(version)

	all := make([]string, 0, 2*len(patterns))
	for _, pattern := range patterns {
		all = append(all, pattern)
		if strings.HasPrefix(pattern, "/") {
			all = append(all, "/"+version+pattern)
		} else {
			all = append(all, version+"/"+pattern)
		}
	}
	return r.AddStrategy(strategy, all...)
}

// AddContentVersionStrategy maps patterns to content digests computed by hasher.
func (r *VersionResolver) AddContentVersionStrategy(hasher ports.ContentHasher, patterns ...string) error {
	return r.AddStrategy(NewContentVersionStrategy(hasher), patterns...)
}

// StrategyFor returns the strategy of the most specific pattern matching p.
func (r *VersionResolver) StrategyFor(p string) VersionStrategy {
	for _, e := range r.entries {
		if e.match(p) {
			return e.strategy
		}
	}
	return nil
}

// Resolve serves the request path as is when it exists and otherwise treats it as a
// versioned path. A version that does not match the current content still resolves,
// carrying the current version.
func (r *VersionResolver) Resolve(
	ctx context.Context, req domain.ResourceRequest, next ports.ResolverChain,
) (*domain.Resource, error) {
	res, err := next.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if res != nil {
		if strategy := r.StrategyFor(req.Path); strategy != nil {
			return res.WithVersion(strategy.ResourceVersion(res)), nil
		}
		return res, nil
	}

	strategy := r.StrategyFor(req.Path)
	if strategy == nil {
		return nil, nil
	}
	candidate := strategy.ExtractVersion(req.Path)
	if candidate == "" {
		return nil, nil
	}

	simplePath := strategy.RemoveVersion(req.Path, candidate)
	if simplePath == "" || simplePath == req.Path {
		return nil, nil
	}

	base, err := next.Resolve(ctx, req.WithPath(simplePath))
	if err != nil || base == nil {
		return nil, err
	}

	actual := strategy.ResourceVersion(base)
	if actual != candidate && r.logger != nil {
		r.logger.Info("requested version " + candidate + " of " + simplePath + " is stale, serving " + actual)
	}
	return base.WithVersion(actual), nil
}

// ResolveURLPath embeds the version into the URL path produced by next.
func (r *VersionResolver) ResolveURLPath(ctx context.Context, resourcePath string, next ports.ResolverChain) (string, error) {
	baseURL, err := next.ResolveURLPath(ctx, resourcePath)
	if err != nil || baseURL == "" {
		return "", err
	}

	strategy := r.StrategyFor(baseURL)
	if strategy == nil {
		return baseURL, nil
	}

	res, err := next.Resolve(ctx, domain.ResourceRequest{Path: baseURL})
	if err != nil {
		return "", err
	}
	if res == nil {
		return baseURL, nil
	}
	return strategy.AddVersion(baseURL, strategy.ResourceVersion(res)), nil
}

func compileEntry(pattern string, strategy VersionStrategy) (*strategyEntry, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, zerr.Wrap(domain.ErrInvalidConfiguration, "empty version strategy pattern")
	}

	normalized := pattern
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}

	entry := &strategyEntry{
		pattern:   normalized,
		wildcards: countWildcards(normalized),
		strategy:  strategy,
	}
	for _, variant := range expandDoubleStar(normalized) {
		g, err := glob.Compile(variant, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidConfiguration, err),
				"invalid version strategy pattern"), "pattern", pattern)
		}
		entry.globs = append(entry.globs, g)
	}
	return entry, nil
}

// expandDoubleStar returns pattern plus every variant with one or more "/**/"
// collapsed to "/", so that "/**/*.js" also matches top-level files.
func expandDoubleStar(pattern string) []string {
	idx := strings.Index(pattern, "/**/")
	if idx < 0 {
		return []string{pattern}
	}

	head := pattern[:idx]
	var variants []string
	for _, tail := range expandDoubleStar(pattern[idx+len("/**"):]) {
		variants = append(variants, head+"/**"+tail, head+tail)
	}
	return variants
}

func countWildcards(pattern string) int {
	return strings.Count(pattern, "*") + strings.Count(pattern, "?") +
		strings.Count(pattern, "[") + strings.Count(pattern, "{")
}
