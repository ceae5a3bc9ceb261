// Package memory provides an in-process plugin registry for embedding hosts and tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/assetd/internal/adapters/lifecycle"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ResourceStore   = (*Registry)(nil)
	_ ports.LifecycleSource = (*Registry)(nil)
)

// Registry holds plugin resources in memory and emits lifecycle events as
// plugins are loaded, updated and unloaded.
type Registry struct {
	lifecycle.Broadcaster

	mu      sync.RWMutex
	plugins map[string]map[string][]byte
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]map[string][]byte),
	}
}

// Load registers a plugin with its resources keyed by relative path.
// Loading an already loaded plugin replaces it and is reported as an update.
func (r *Registry) Load(pluginID string, resources map[string][]byte) error {
	if pluginID == "" {
		return zerr.New("plugin id must not be empty")
	}

	files, err := normalizeResources(pluginID, resources)
	if err != nil {
		return err
	}

	r.mu.Lock()
	_, existed := r.plugins[pluginID]
	r.plugins[pluginID] = files
	r.mu.Unlock()

	kind := domain.PluginLoaded
	if existed {
		kind = domain.PluginUpdated
	}
	r.Emit(domain.LifecycleEvent{Kind: kind, PluginID: pluginID})
	return nil
}

// Update replaces the resources of a loaded plugin.
func (r *Registry) Update(pluginID string, resources map[string][]byte) error {
	files, err := normalizeResources(pluginID, resources)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.plugins[pluginID]; !ok {
		r.mu.Unlock()
		return zerr.With(zerr.Wrap(domain.ErrPluginUnavailable, "cannot update plugin that is not loaded"),
			"plugin", pluginID)
	}
	r.plugins[pluginID] = files
	r.mu.Unlock()

	r.Emit(domain.LifecycleEvent{Kind: domain.PluginUpdated, PluginID: pluginID})
	return nil
}

// Unload removes a plugin. Unloading an unknown plugin does nothing.
func (r *Registry) Unload(pluginID string) {
	r.mu.Lock()
	_, ok := r.plugins[pluginID]
	delete(r.plugins, pluginID)
	r.mu.Unlock()

	if ok {
		r.Emit(domain.LifecycleEvent{Kind: domain.PluginUnloaded, PluginID: pluginID})
	}
}

// Plugins returns the ids of the loaded plugins in sorted order.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.plugins))
}

// Lookup returns the content of resourcePath in the given plugin.
func (r *Registry) Lookup(ctx context.Context, pluginID, resourcePath string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	clean, ok := domain.NormalizePath(resourcePath)
	if !ok {
		return nil, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	files, ok := r.plugins[pluginID]
	if !ok {
		return nil, false, nil
	}
	content, ok := files[clean]
	return content, ok, nil
}

// normalizeResources copies resources with normalized keys so later caller
// mutations cannot leak into the registry.
func normalizeResources(pluginID string, resources map[string][]byte) (map[string][]byte, error) {
	files := make(map[string][]byte, len(resources))
	for key, content := range resources {
		clean, ok := domain.NormalizePath(key)
		if !ok {
			return nil, zerr.With(zerr.With(zerr.New("invalid resource path"), "plugin", pluginID), "path", key)
		}
		files[clean] = slices.Clone(content)
	}
	return files, nil
}
