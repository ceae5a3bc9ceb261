package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ResolverKind is one of the closed set of resolver variants a chain can contain.
type ResolverKind int

const (
	// ResolverEncoded substitutes pre-encoded variants of a resource.
	ResolverEncoded ResolverKind = iota
	// ResolverVersion maps versioned URLs onto resources.
	ResolverVersion
	// ResolverPlugin locates resources owned by plugins.
	ResolverPlugin
	// ResolverStatic locates resources in the host's static directory.
	ResolverStatic
)

// String returns a string representation of the kind.
func (k ResolverKind) String() string {
	switch k {
	case ResolverEncoded:
		return "encoded"
	case ResolverVersion:
		return "version"
	case ResolverPlugin:
		return "plugin"
	case ResolverStatic:
		return "static"
	default:
		return "unknown"
	}
}

// TransformerKind is one of the closed set of transformer variants a chain can contain.
type TransformerKind int

const (
	// TransformerManifest rewrites application cache manifests to versioned URLs.
	TransformerManifest TransformerKind = iota
)

// String returns a string representation of the kind.
func (k TransformerKind) String() string {
	switch k {
	case TransformerManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// FixedVersionConfig configures the fixed version strategy.
type FixedVersionConfig struct {
	Enabled bool
	Version string
	Paths   []string
}

// ContentVersionConfig configures the content version strategy.
type ContentVersionConfig struct {
	Enabled bool
	Paths   []string
}

// ChainConfig describes which resolvers and transformers make up the resolution chain.
type ChainConfig struct {
	// Cache enables the resolution cache. When false every request walks the chain.
	Cache bool
	// Compressed enables the encoded resolver.
	Compressed bool
	// Manifest enables the application cache manifest transformer.
	Manifest bool
	// StaticFallback appends the host static resolver after the plugin resolver.
	StaticFallback bool

	FixedVersion   FixedVersionConfig
	ContentVersion ContentVersionConfig
}

// VersioningEnabled reports whether any version strategy is active.
func (c ChainConfig) VersioningEnabled() bool {
	return c.FixedVersion.Enabled || c.ContentVersion.Enabled
}

// Validate checks the configuration for missing or contradictory settings.
func (c ChainConfig) Validate() error {
	if c.FixedVersion.Enabled {
		if strings.TrimSpace(c.FixedVersion.Version) == "" {
			return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "fixed version strategy requires a version"),
				"strategy", "fixed")
		}
		if strings.Contains(c.FixedVersion.Version, "/") {
			return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "fixed version must be a single path segment"),
				"version", c.FixedVersion.Version)
		}
		if len(c.FixedVersion.Paths) == 0 {
			return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "fixed version strategy requires path patterns"),
				"strategy", "fixed")
		}
	}
	if c.ContentVersion.Enabled && len(c.ContentVersion.Paths) == 0 {
		return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "content version strategy requires path patterns"),
			"strategy", "content")
	}
	return nil
}

// Plan returns the resolvers in delegation order and the transformers in application order.
//
// The plugin resolver sits after the encoded and version resolvers so that it locates a
// resource before encoding or version logic operates on it.
func (c ChainConfig) Plan() ([]ResolverKind, []TransformerKind) {
	var resolvers []ResolverKind
	if c.Compressed {
		resolvers = append(resolvers, ResolverEncoded)
	}
	if c.VersioningEnabled() {
		resolvers = append(resolvers, ResolverVersion)
	}
	resolvers = append(resolvers, ResolverPlugin)
	if c.StaticFallback {
		resolvers = append(resolvers, ResolverStatic)
	}

	var transformers []TransformerKind
	if c.Manifest {
		transformers = append(transformers, TransformerManifest)
	}
	return resolvers, transformers
}
