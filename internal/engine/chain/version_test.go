package chain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/assetd/internal/core/ports/mocks"
	"go.trai.ch/assetd/internal/engine/chain"
	"go.uber.org/mock/gomock"
)

const appJS = "console.log(1)"

func TestFixedVersionStrategy(t *testing.T) {
	s := chain.NewFixedVersionStrategy("v1")

	assert.Equal(t, "v1", s.ExtractVersion("v1/alpha/app.js"))
	assert.Empty(t, s.ExtractVersion("v2/alpha/app.js"))
	assert.Empty(t, s.ExtractVersion("v1app.js"))
	assert.Equal(t, "alpha/app.js", s.RemoveVersion("v1/alpha/app.js", "v1"))
	assert.Equal(t, "v1/alpha/app.js", s.AddVersion("alpha/app.js", "v1"))
	assert.Equal(t, "v1", s.ResourceVersion(&domain.Resource{Content: []byte("anything")}))
}

func TestContentVersionStrategy(t *testing.T) {
	hasher := newHasher()
	s := chain.NewContentVersionStrategy(hasher)
	digest := hasher.Hash([]byte(appJS))

	tests := []struct {
		name      string
		versioned string
		version   string
		plain     string
	}{
		{name: "simple", versioned: "alpha/app-" + digest + ".js", version: digest, plain: "alpha/app.js"},
		{name: "dotted stem", versioned: "alpha/app.min-" + digest + ".js", version: digest, plain: "alpha/app.min.js"},
		{name: "no extension", versioned: "alpha/LICENSE-" + digest, version: digest, plain: "alpha/LICENSE"},
		{name: "dashed name", versioned: "alpha/my-lib-" + digest + ".js", version: digest, plain: "alpha/my-lib.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.version, s.ExtractVersion(tt.versioned))
			assert.Equal(t, tt.plain, s.RemoveVersion(tt.versioned, tt.version))
			assert.Equal(t, tt.versioned, s.AddVersion(tt.plain, tt.version))
		})
	}

	assert.Empty(t, s.ExtractVersion("alpha/app.js"))
	assert.Empty(t, s.ExtractVersion("alpha/jquery-ui.js"))
	assert.Equal(t, digest, s.ResourceVersion(&domain.Resource{Content: []byte(appJS)}))
}

func TestVersionResolver_StrategySpecificity(t *testing.T) {
	vr := chain.NewVersionResolver(nil)
	require.NoError(t, vr.AddContentVersionStrategy(newHasher(), "/**/*.js"))
	require.NoError(t, vr.AddFixedVersionStrategy("v1", "/alpha/vendor/**"))

	assert.IsType(t, &chain.FixedVersionStrategy{}, vr.StrategyFor("alpha/vendor/lib.js"))
	assert.IsType(t, &chain.FixedVersionStrategy{}, vr.StrategyFor("v1/alpha/vendor/lib.js"))
	assert.IsType(t, &chain.ContentVersionStrategy{}, vr.StrategyFor("alpha/app.js"))
	assert.IsType(t, &chain.ContentVersionStrategy{}, vr.StrategyFor("app.js"))
	assert.Nil(t, vr.StrategyFor("alpha/logo.png"))
}

func TestVersionResolver_InvalidPattern(t *testing.T) {
	vr := chain.NewVersionResolver(nil)

	assert.ErrorIs(t, vr.AddContentVersionStrategy(newHasher(), "/[unclosed"), domain.ErrInvalidConfiguration)
	assert.ErrorIs(t, vr.AddContentVersionStrategy(newHasher(), " "), domain.ErrInvalidConfiguration)
}

func newVersionChain(t *testing.T, vr *chain.VersionResolver) *chain.Chain {
	t.Helper()

	reg := newRegistry(t, map[string]map[string]string{
		"alpha": {"app.js": appJS, "logo.png": "png"},
	})
	return chain.New([]ports.Resolver{vr, chain.NewPluginResolver(reg)}, nil)
}

func TestVersionResolver_ContentRoundTrip(t *testing.T) {
	hasher := newHasher()
	vr := chain.NewVersionResolver(nil)
	require.NoError(t, vr.AddContentVersionStrategy(hasher, "/**/*.js"))
	c := newVersionChain(t, vr)
	ctx := context.Background()

	url, err := c.ResolveURLPath(ctx, "alpha/app.js")
	require.NoError(t, err)
	digest := hasher.Hash([]byte(appJS))
	assert.Equal(t, "alpha/app-"+digest+".js", url)

	res, err := c.Resolve(ctx, request(t, url))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "alpha/app.js", res.Path)
	assert.Equal(t, appJS, string(res.Content))
	assert.Equal(t, digest, res.Version)

	// The plain path resolves too and carries the version.
	res, err = c.Resolve(ctx, request(t, "alpha/app.js"))
	require.NoError(t, err)
	assert.Equal(t, digest, res.Version)

	// Unversioned patterns pass through.
	url, err = c.ResolveURLPath(ctx, "alpha/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "alpha/logo.png", url)

	url, err = c.ResolveURLPath(ctx, "alpha/missing.js")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestVersionResolver_FixedStripping(t *testing.T) {
	vr := chain.NewVersionResolver(nil)
	require.NoError(t, vr.AddFixedVersionStrategy("v1", "/**"))
	c := newVersionChain(t, vr)
	ctx := context.Background()

	res, err := c.Resolve(ctx, request(t, "v1/alpha/app.js"))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "alpha/app.js", res.Path)
	assert.Equal(t, appJS, string(res.Content))
	assert.Equal(t, "v1", res.Version)

	url, err := c.ResolveURLPath(ctx, "alpha/app.js")
	require.NoError(t, err)
	assert.Equal(t, "v1/alpha/app.js", url)

	res, err = c.Resolve(ctx, request(t, "v2/alpha/app.js"))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestVersionResolver_StaleVersionServesCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Times(1)

	hasher := newHasher()
	vr := chain.NewVersionResolver(log)
	require.NoError(t, vr.AddContentVersionStrategy(hasher, "/**/*.js"))
	c := newVersionChain(t, vr)

	res, err := c.Resolve(context.Background(), request(t, "alpha/app-0123456789abcdef.js"))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "alpha/app.js", res.Path)
	assert.Equal(t, hasher.Hash([]byte(appJS)), res.Version)
}

func TestVersionResolver_NotFound(t *testing.T) {
	vr := chain.NewVersionResolver(nil)
	require.NoError(t, vr.AddContentVersionStrategy(newHasher(), "/**/*.js"))
	c := newVersionChain(t, vr)
	ctx := context.Background()

	for _, p := range []string{"alpha/jquery-ui.js", "alpha/missing-0123456789abcdef.js", "alpha/logo-abc.png"} {
		res, err := c.Resolve(ctx, request(t, p))
		require.NoError(t, err)
		assert.Nil(t, res, p)
	}
}
