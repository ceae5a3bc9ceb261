package invalidator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/adapters/cache"
	"go.trai.ch/assetd/internal/adapters/memory"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/assetd/internal/core/ports/mocks"
	"go.trai.ch/assetd/internal/engine/chain"
	"go.trai.ch/assetd/internal/engine/invalidator"
	"go.uber.org/mock/gomock"
)

func TestListener_ClearsOnEveryEvent(t *testing.T) {
	events := []domain.LifecycleEvent{
		{Kind: domain.PluginLoaded, PluginID: "alpha"},
		{Kind: domain.PluginUnloaded, PluginID: "beta"},
		{Kind: domain.PluginUpdated, PluginID: ""},
	}

	for _, event := range events {
		t.Run(event.Kind.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			target := mocks.NewMockCacheClearer(ctrl)
			log := mocks.NewMockLogger(ctrl)

			target.EXPECT().Clear().Times(1)
			log.EXPECT().Info(gomock.Any()).Times(1)

			invalidator.New(target, log).OnEvent(event)
		})
	}
}

func TestListener_NilTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	l := invalidator.New(nil, log)
	assert.NotPanics(t, func() {
		l.OnEvent(domain.LifecycleEvent{Kind: domain.PluginLoaded, PluginID: "alpha"})
	})
}

func TestListener_AttachAndDetach(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockLifecycleSource(ctrl)
	target := mocks.NewMockCacheClearer(ctrl)

	var handler ports.LifecycleHandler
	detached := false
	source.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(h ports.LifecycleHandler) func() {
		handler = h
		return func() { detached = true }
	})
	target.EXPECT().Clear().Times(1)

	detach := invalidator.New(target, nil).Attach(source)
	require.NotNil(t, handler)

	handler(domain.LifecycleEvent{Kind: domain.PluginUpdated, PluginID: "alpha"})
	detach()
	assert.True(t, detached)
}

// Resolving, unloading the owning plugin, and resolving again yields NotFound.
func TestListener_UnloadScenario(t *testing.T) {
	reg := memory.NewRegistry()
	require.NoError(t, reg.Load("alpha", map[string][]byte{"app.js": []byte("console.log(1)")}))

	p, err := chain.Build(domain.ChainConfig{Cache: true}, reg, chain.WithCache(cache.NewMemoryCache()))
	require.NoError(t, err)

	detach := invalidator.New(p.Cache(), nil).Attach(reg)
	defer detach()

	req, ok := domain.NewResourceRequest("alpha/app.js")
	require.True(t, ok)
	ctx := context.Background()

	res, err := p.Resolve(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res)

	reg.Unload("alpha")

	res, err = p.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, res)
}

// An update is visible on the next resolution.
func TestListener_UpdateScenario(t *testing.T) {
	reg := memory.NewRegistry()
	require.NoError(t, reg.Load("alpha", map[string][]byte{"app.js": []byte("v1")}))

	p, err := chain.Build(domain.ChainConfig{Cache: true}, reg, chain.WithCache(cache.NewMemoryCache()))
	require.NoError(t, err)
	invalidator.New(p.Cache(), nil).Attach(reg)

	req, _ := domain.NewResourceRequest("alpha/app.js")
	ctx := context.Background()

	res, err := p.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(res.Content))

	require.NoError(t, reg.Update("alpha", map[string][]byte{"app.js": []byte("v2")}))

	res, err = p.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(res.Content))
}
