package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/adapters/memory"
	"go.trai.ch/assetd/internal/core/domain"
)

func TestRegistry_LoadLookupUnload(t *testing.T) {
	reg := memory.NewRegistry()
	var events []domain.LifecycleEvent
	reg.Subscribe(func(e domain.LifecycleEvent) { events = append(events, e) })
	ctx := context.Background()

	resources := map[string][]byte{"/img/logo.png": []byte("png")}
	require.NoError(t, reg.Load("alpha", resources))

	// Mutating the caller's map after loading has no effect.
	resources["/img/logo.png"][0] = 'X'

	content, found, err := reg.Lookup(ctx, "alpha", "img/logo.png")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "png", string(content))
	assert.Equal(t, []string{"alpha"}, reg.Plugins())

	reg.Unload("alpha")
	reg.Unload("alpha")

	_, found, err = reg.Lookup(ctx, "alpha", "img/logo.png")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, []domain.LifecycleEvent{
		{Kind: domain.PluginLoaded, PluginID: "alpha"},
		{Kind: domain.PluginUnloaded, PluginID: "alpha"},
	}, events)
}

func TestRegistry_Update(t *testing.T) {
	reg := memory.NewRegistry()
	var kinds []domain.LifecycleKind
	reg.Subscribe(func(e domain.LifecycleEvent) { kinds = append(kinds, e.Kind) })

	require.NoError(t, reg.Load("alpha", map[string][]byte{"app.js": []byte("v1")}))
	require.NoError(t, reg.Update("alpha", map[string][]byte{"app.js": []byte("v2")}))
	require.NoError(t, reg.Load("alpha", map[string][]byte{"app.js": []byte("v3")}))

	content, found, err := reg.Lookup(context.Background(), "alpha", "app.js")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v3", string(content))
	assert.Equal(t, []domain.LifecycleKind{domain.PluginLoaded, domain.PluginUpdated, domain.PluginUpdated}, kinds)
}

func TestRegistry_Errors(t *testing.T) {
	reg := memory.NewRegistry()

	require.Error(t, reg.Load("", nil))
	require.Error(t, reg.Load("alpha", map[string][]byte{"../escape": nil}))

	err := reg.Update("ghost", nil)
	assert.ErrorIs(t, err, domain.ErrPluginUnavailable)
	assert.Empty(t, reg.Plugins())
}
