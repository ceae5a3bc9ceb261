// Package domain holds the core types of the asset resolution chain.
package domain

import (
	"path"
	"strings"
)

// ResourceRequest is a single inbound asset lookup.
// It is owned by the caller and never mutated by the chain.
type ResourceRequest struct {
	// Path is the requested asset path relative to the serving root, without a leading slash.
	Path string
	// AcceptEncodings lists the content codings the client accepts, e.g. "gzip" or "br".
	AcceptEncodings []string
}

// NewResourceRequest creates a request for the given raw path.
// The path is normalized; ok is false when the path escapes the serving root.
func NewResourceRequest(rawPath string, acceptEncodings ...string) (ResourceRequest, bool) {
	p, ok := NormalizePath(rawPath)
	if !ok {
		return ResourceRequest{}, false
	}
	return ResourceRequest{Path: p, AcceptEncodings: acceptEncodings}, true
}

// WithPath returns a copy of the request pointing at another path.
func (r ResourceRequest) WithPath(p string) ResourceRequest {
	return ResourceRequest{Path: p, AcceptEncodings: r.AcceptEncodings}
}

// WithoutEncodings returns a copy of the request that accepts no content codings.
func (r ResourceRequest) WithoutEncodings() ResourceRequest {
	return ResourceRequest{Path: r.Path}
}

// Accepts reports whether the client accepts the given content coding.
func (r ResourceRequest) Accepts(encoding string) bool {
	for _, e := range r.AcceptEncodings {
		if strings.EqualFold(strings.TrimSpace(e), encoding) {
			return true
		}
	}
	return false
}

// Resource is a resolved asset.
// A Resource is immutable once produced; Content must not be modified by holders.
type Resource struct {
	// Path is the effective, unversioned path the resource was located at.
	Path string
	// Content is the payload served to the client.
	Content []byte
	// Encoding is the content coding of Content, empty for identity.
	Encoding string
	// Version is the version token used for cache-busting URLs and entity tags.
	Version string
}

// Len returns the content length in bytes.
func (r *Resource) Len() int {
	return len(r.Content)
}

// WithContent returns a copy of the resource carrying a different payload.
func (r *Resource) WithContent(content []byte) *Resource {
	cp := *r
	cp.Content = content
	return &cp
}

// WithEncoding returns a copy of the resource carrying an encoded payload.
func (r *Resource) WithEncoding(encoding string, content []byte) *Resource {
	cp := *r
	cp.Encoding = encoding
	cp.Content = content
	return &cp
}

// WithVersion returns a copy of the resource carrying the given version token.
func (r *Resource) WithVersion(version string) *Resource {
	cp := *r
	cp.Version = version
	return &cp
}

// NormalizePath converts a raw request path into the canonical form used by the chain:
// cleaned, slash separated, without leading slash. It returns false for paths that
// would escape the serving root or that name the root itself.
func NormalizePath(raw string) (string, bool) {
	raw = strings.ReplaceAll(raw, "\\", "/")
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", false
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+raw), "/")
	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}

// SplitPluginPath splits a normalized path into the owning plugin identifier (the first
// segment) and the residual path inside the plugin.
func SplitPluginPath(p string) (pluginID, residual string, ok bool) {
	pluginID, residual, found := strings.Cut(p, "/")
	if !found || pluginID == "" || residual == "" {
		return "", "", false
	}
	return pluginID, residual, true
}
