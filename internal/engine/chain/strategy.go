package chain

import (
	"path"
	"strings"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
)

// VersionStrategy embeds a version token into resource paths and derives the
// version of a resolved resource.
type VersionStrategy interface {
	// ExtractVersion returns the version token embedded in p, or "" when there is none.
	ExtractVersion(p string) string
	// RemoveVersion returns p with the version token removed.
	RemoveVersion(p, version string) string
	// AddVersion returns p with the version token embedded.
	AddVersion(p, version string) string
	// ResourceVersion returns the version of a resolved resource.
	ResourceVersion(res *domain.Resource) string
}

var _ VersionStrategy = (*FixedVersionStrategy)(nil)

// FixedVersionStrategy prefixes paths with a constant version segment: "v1/app.js".
type FixedVersionStrategy struct {
	version string
}

// NewFixedVersionStrategy creates a strategy using version as the path prefix.
func NewFixedVersionStrategy(version string) *FixedVersionStrategy {
	return &FixedVersionStrategy{version: version}
}

// ExtractVersion returns the configured version when p starts with it.
func (s *FixedVersionStrategy) ExtractVersion(p string) string {
	if strings.HasPrefix(p, s.version+"/") {
		return s.version
	}
	return ""
}

// RemoveVersion strips the leading version segment.
func (s *FixedVersionStrategy) RemoveVersion(p, version string) string {
	return strings.TrimPrefix(p, version+"/")
}

// AddVersion prepends the version segment.
func (s *FixedVersionStrategy) AddVersion(p, version string) string {
	return version + "/" + strings.TrimPrefix(p, "/")
}

// ResourceVersion returns the configured version regardless of content.
func (s *FixedVersionStrategy) ResourceVersion(_ *domain.Resource) string {
	return s.version
}

var _ VersionStrategy = (*ContentVersionStrategy)(nil)

// ContentVersionStrategy appends a content digest to the file name: "app-<hash>.js".
type ContentVersionStrategy struct {
	hasher ports.ContentHasher
}

// NewContentVersionStrategy creates a strategy whose versions are digests computed by hasher.
func NewContentVersionStrategy(hasher ports.ContentHasher) *ContentVersionStrategy {
	return &ContentVersionStrategy{hasher: hasher}
}

// ExtractVersion returns the hex token after the last '-' of the file stem.
func (s *ContentVersionStrategy) ExtractVersion(p string) string {
	_, stem, _ := splitFileName(p)
	idx := strings.LastIndexByte(stem, '-')
	if idx < 0 {
		return ""
	}
	candidate := stem[idx+1:]
	if !isHex(candidate) {
		return ""
	}
	return candidate
}

// RemoveVersion drops "-<version>" from the file stem.
func (s *ContentVersionStrategy) RemoveVersion(p, version string) string {
	dir, stem, ext := splitFileName(p)
	return dir + strings.TrimSuffix(stem, "-"+version) + ext
}

// AddVersion inserts "-<version>" before the file extension.
func (s *ContentVersionStrategy) AddVersion(p, version string) string {
	dir, stem, ext := splitFileName(p)
	return dir + stem + "-" + version + ext
}

// ResourceVersion returns the digest of the resource content.
func (s *ContentVersionStrategy) ResourceVersion(res *domain.Resource) string {
	return s.hasher.Hash(res.Content)
}

// splitFileName splits p into its directory (with trailing slash), the file name
// up to its last dot, and the extension including the dot.
func splitFileName(p string) (dir, stem, ext string) {
	dir, file := path.Split(p)
	ext = path.Ext(file)
	return dir, strings.TrimSuffix(file, ext), ext
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
