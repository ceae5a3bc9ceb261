package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/adapters/lifecycle"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestBroadcaster_EmitReachesSubscribers(t *testing.T) {
	var b lifecycle.Broadcaster
	var first, second []domain.LifecycleEvent

	b.Subscribe(func(e domain.LifecycleEvent) { first = append(first, e) })
	b.Subscribe(func(e domain.LifecycleEvent) { second = append(second, e) })

	event := domain.LifecycleEvent{Kind: domain.PluginLoaded, PluginID: "alpha"}
	b.Emit(event)

	assert.Equal(t, []domain.LifecycleEvent{event}, first)
	assert.Equal(t, []domain.LifecycleEvent{event}, second)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	var b lifecycle.Broadcaster
	calls := 0

	unsubscribe := b.Subscribe(func(domain.LifecycleEvent) { calls++ })
	require.Equal(t, 1, b.Len())

	unsubscribe()
	unsubscribe()
	b.Emit(domain.LifecycleEvent{Kind: domain.PluginUnloaded, PluginID: "alpha"})

	assert.Zero(t, calls)
	assert.Zero(t, b.Len())
}

func TestBroadcaster_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	var b lifecycle.Broadcaster
	delivered := false

	b.Subscribe(func(domain.LifecycleEvent) { panic("boom") })
	b.Subscribe(func(domain.LifecycleEvent) { delivered = true })

	assert.NotPanics(t, func() {
		b.Emit(domain.LifecycleEvent{Kind: domain.PluginUpdated, PluginID: "alpha"})
	})
	assert.True(t, delivered)
}

func TestBroadcaster_ReportsPanicToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var reported error
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) { reported = err }).Times(1)

	var b lifecycle.Broadcaster
	b.SetLogger(logger)
	b.Subscribe(func(domain.LifecycleEvent) { panic("boom") })
	b.Subscribe(func(domain.LifecycleEvent) {})

	b.Emit(domain.LifecycleEvent{Kind: domain.PluginUnloaded, PluginID: "alpha"})

	var zErr *zerr.Error
	require.ErrorAs(t, reported, &zErr)
	assert.Equal(t, "lifecycle handler panicked", zErr.Message())
	assert.Equal(t, "alpha", zErr.Metadata()["plugin"])
	assert.Equal(t, "boom", zErr.Metadata()["panic"])
}

func TestBroadcaster_NilHandler(t *testing.T) {
	var b lifecycle.Broadcaster

	unsubscribe := b.Subscribe(nil)
	require.NotNil(t, unsubscribe)
	unsubscribe()
	assert.Zero(t, b.Len())
}
