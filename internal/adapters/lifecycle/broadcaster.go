// Package lifecycle provides the subscriber bookkeeping shared by plugin registries.
package lifecycle

import (
	"fmt"
	"sync"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LifecycleSource = (*Broadcaster)(nil)

// Broadcaster fans lifecycle events out to subscribed handlers.
// The zero value is ready to use.
type Broadcaster struct {
	mu       sync.RWMutex
	handlers []ports.LifecycleHandler
	logger   ports.Logger
}

// SetLogger sets where panicking handlers are reported. Without a logger they
// are recovered silently.
func (b *Broadcaster) SetLogger(logger ports.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = logger
}

// Subscribe registers handler and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Broadcaster) Subscribe(handler ports.LifecycleHandler) func() {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	index := len(b.handlers) - 1
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// Slots are nilled rather than removed so other indices stay valid.
		if index < len(b.handlers) {
			b.handlers[index] = nil
		}
	}
}

// Emit delivers event to every subscribed handler.
// Handlers run outside the lock; a panicking handler does not stop delivery.
func (b *Broadcaster) Emit(event domain.LifecycleEvent) {
	b.mu.RLock()
	handlers := make([]ports.LifecycleHandler, len(b.handlers))
	copy(handlers, b.handlers)
	logger := b.logger
	b.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil && logger != nil {
					logger.Error(zerr.With(zerr.With(zerr.New("lifecycle handler panicked"),
						"plugin", event.PluginID), "panic", fmt.Sprint(r)))
				}
			}()
			handler(event)
		}()
	}
}

// Len returns the number of active subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, h := range b.handlers {
		if h != nil {
			n++
		}
	}
	return n
}
