package domain_test

import (
	"testing"

	"go.trai.ch/assetd/internal/core/domain"
)

func TestNewCacheKey(t *testing.T) {
	tests := []struct {
		name string
		req  domain.ResourceRequest
		want domain.CacheKey
	}{
		{
			name: "plain path",
			req:  domain.ResourceRequest{Path: "p/app.js"},
			want: "resolved:p/app.js",
		},
		{
			name: "unsupported encodings ignored",
			req:  domain.ResourceRequest{Path: "p/app.js", AcceptEncodings: []string{"deflate", "identity"}},
			want: "resolved:p/app.js",
		},
		{
			name: "supported encodings sorted",
			req:  domain.ResourceRequest{Path: "p/app.js", AcceptEncodings: []string{"gzip", "deflate", "br"}},
			want: "resolved:p/app.js+encoding=br,gzip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.NewCacheKey(tt.req); got != tt.want {
				t.Errorf("NewCacheKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheKey_SameEffectivePath(t *testing.T) {
	a, _ := domain.NewResourceRequest("/p/./app.js", "gzip", "br")
	b, _ := domain.NewResourceRequest("p/app.js", "br", "gzip")

	if domain.NewCacheKey(a) != domain.NewCacheKey(b) {
		t.Errorf("expected equal keys, got %q and %q", domain.NewCacheKey(a), domain.NewCacheKey(b))
	}
}
