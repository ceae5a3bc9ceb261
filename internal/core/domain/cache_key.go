package domain

import (
	"slices"
	"strings"
)

// Supported content codings in server preference order.
const (
	EncodingBrotli = "br"
	EncodingGzip   = "gzip"
)

// SupportedEncodings lists the content codings the chain can negotiate, in preference order.
var SupportedEncodings = []string{EncodingBrotli, EncodingGzip}

// EncodingExtension returns the file extension of pre-encoded variants for the coding.
func EncodingExtension(encoding string) string {
	switch encoding {
	case EncodingBrotli:
		return ".br"
	case EncodingGzip:
		return ".gz"
	default:
		return ""
	}
}

const cacheKeyPrefix = "resolved:"

// CacheKey identifies a resolved resource in the resolution cache.
type CacheKey string

// NewCacheKey derives the cache key for a request.
// Requests with the same effective path and the same negotiable encodings share a key.
func NewCacheKey(req ResourceRequest) CacheKey {
	var b strings.Builder
	b.WriteString(cacheKeyPrefix)
	b.WriteString(req.Path)

	var accepted []string
	for _, enc := range SupportedEncodings {
		if req.Accepts(enc) {
			accepted = append(accepted, enc)
		}
	}
	if len(accepted) > 0 {
		slices.Sort(accepted)
		b.WriteString("+encoding=")
		b.WriteString(strings.Join(accepted, ","))
	}

	return CacheKey(b.String())
}

// String returns the key as a string.
func (k CacheKey) String() string {
	return string(k)
}
