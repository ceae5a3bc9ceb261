package chain

import (
	"context"
	"path"
	"strings"
	"unicode/utf8"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transformer = (*ManifestTransformer)(nil)

const (
	manifestExtension = ".appcache"
	manifestHeader    = "CACHE MANIFEST"
	manifestHashLine  = "# Hash: "
)

// manifestSections are the section headers of an application cache manifest.
var manifestSections = map[string]bool{
	"CACHE:":    true,
	"NETWORK:":  true,
	"FALLBACK:": true,
	"SETTINGS:": true,
}

// ManifestTransformer rewrites the CACHE entries of application cache manifests to
// their versioned URLs and appends a digest so the manifest changes whenever a
// linked resource does.
type ManifestTransformer struct {
	hasher ports.ContentHasher
}

// NewManifestTransformer creates a transformer that digests manifests with hasher.
func NewManifestTransformer(hasher ports.ContentHasher) *ManifestTransformer {
	return &ManifestTransformer{hasher: hasher}
}

// Transform rewrites res when it is an application cache manifest and returns it unchanged otherwise.
// Encoded payloads are passed through untouched.
func (t *ManifestTransformer) Transform(
	ctx context.Context, _ domain.ResourceRequest, res *domain.Resource, chain ports.ResolverChain,
) (*domain.Resource, error) {
	if path.Ext(res.Path) != manifestExtension || res.Encoding != "" {
		return res, nil
	}
	if !utf8.Valid(res.Content) {
		return nil, zerr.With(zerr.Wrap(domain.ErrTransformFailed, "manifest is not valid UTF-8"), "path", res.Path)
	}

	content := string(res.Content)
	if !strings.HasPrefix(content, manifestHeader) {
		return res, nil
	}

	baseDir := path.Dir(res.Path)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	inCache := true

	for i, raw := range lines {
		if i == 0 {
			continue
		}
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))

		if manifestSections[line] {
			inCache = line == "CACHE:"
			continue
		}
		if !inCache || line == "" || strings.HasPrefix(line, "#") || isAbsoluteURL(line) {
			continue
		}

		rewritten, err := t.rewriteLink(ctx, baseDir, line, chain)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to rewrite manifest entry"), "link", line)
		}
		if rewritten != "" {
			lines[i] = rewritten
		}
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	body := b.String()

	return res.WithContent([]byte(body + manifestHashLine + t.hasher.Hash([]byte(body)) + "\n")), nil
}

// rewriteLink resolves link to its versioned URL. Root-relative links resolve from
// the serving root, other links relative to the manifest. An empty result keeps the
// original line.
func (t *ManifestTransformer) rewriteLink(ctx context.Context, baseDir, link string, chain ports.ResolverChain) (string, error) {
	if strings.HasPrefix(link, "/") {
		url, err := chain.ResolveURLPath(ctx, strings.TrimPrefix(link, "/"))
		if err != nil || url == "" {
			return "", err
		}
		return "/" + url, nil
	}

	target, ok := domain.NormalizePath(path.Join(baseDir, link))
	if !ok {
		return "", nil
	}
	url, err := chain.ResolveURLPath(ctx, target)
	if err != nil || url == "" {
		return "", err
	}

	if baseDir == "." {
		return url, nil
	}
	if rel, found := strings.CutPrefix(url, baseDir+"/"); found {
		return rel, nil
	}
	// The versioned URL left the manifest's directory, as with a fixed version prefix.
	return "/" + url, nil
}

func isAbsoluteURL(link string) bool {
	return strings.HasPrefix(link, "//") || strings.Contains(link, "://") ||
		strings.HasPrefix(link, "data:") || strings.HasPrefix(link, "mailto:")
}
