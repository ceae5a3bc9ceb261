package ports

import "context"

// ResourceStore is the read-only lookup into plugin-provided resources.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResourceStore interface {
	// Lookup returns the content stored under resourcePath for the given plugin.
	// found is false when the plugin is unknown or does not provide the resource.
	// A plugin that disappears while the lookup is in flight is reported either as
	// not found or as domain.ErrPluginUnavailable.
	Lookup(ctx context.Context, pluginID, resourcePath string) (content []byte, found bool, err error)
}
