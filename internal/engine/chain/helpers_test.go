package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/adapters/fs"
	"go.trai.ch/assetd/internal/adapters/memory"
	"go.trai.ch/assetd/internal/core/domain"
)

func newHasher() *fs.Hasher {
	return fs.NewHasher(fs.NewWalker())
}

// newRegistry returns a registry with the given plugins loaded.
func newRegistry(t *testing.T, plugins map[string]map[string]string) *memory.Registry {
	t.Helper()

	reg := memory.NewRegistry()
	for id, files := range plugins {
		resources := make(map[string][]byte, len(files))
		for p, content := range files {
			resources[p] = []byte(content)
		}
		require.NoError(t, reg.Load(id, resources))
	}
	return reg
}

func request(t *testing.T, raw string, encodings ...string) domain.ResourceRequest {
	t.Helper()

	req, ok := domain.NewResourceRequest(raw, encodings...)
	require.True(t, ok, "invalid request path %q", raw)
	return req
}
