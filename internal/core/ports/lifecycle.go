package ports

import "go.trai.ch/assetd/internal/core/domain"

// LifecycleHandler receives plugin lifecycle events.
type LifecycleHandler func(event domain.LifecycleEvent)

// LifecycleSource delivers plugin lifecycle events to subscribers.
//
//go:generate go run go.uber.org/mock/mockgen -source=lifecycle.go -destination=mocks/mock_lifecycle.go -package=mocks
type LifecycleSource interface {
	// Subscribe registers the handler and returns a function that removes it.
	Subscribe(handler LifecycleHandler) (unsubscribe func())
}
