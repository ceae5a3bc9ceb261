// Package invalidator clears the resolution cache when plugins change.
package invalidator

import (
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
)

// Listener clears its target on every plugin lifecycle event.
// The whole cache is dropped regardless of which plugin changed.
type Listener struct {
	target ports.CacheClearer
	logger ports.Logger
}

// New creates a Listener. A nil target makes OnEvent a no-op; logger may be nil.
func New(target ports.CacheClearer, logger ports.Logger) *Listener {
	return &Listener{target: target, logger: logger}
}

// OnEvent handles a single lifecycle event.
func (l *Listener) OnEvent(event domain.LifecycleEvent) {
	if l.target == nil {
		return
	}
	l.target.Clear()

	if l.logger != nil {
		l.logger.Info("plugin " + event.PluginID + " " + event.Kind.String() + ", resolution cache cleared")
	}
}

// Attach subscribes the listener to source and returns the function that detaches it.
func (l *Listener) Attach(source ports.LifecycleSource) (detach func()) {
	return source.Subscribe(l.OnEvent)
}
