package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/assetd/internal/adapters/lifecycle"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ResourceStore   = (*PluginDirectory)(nil)
	_ ports.LifecycleSource = (*PluginDirectory)(nil)
)

// PluginDirectory treats every non-hidden subdirectory of root as a plugin.
// Plugins become visible to Lookup after a Scan discovers them.
type PluginDirectory struct {
	lifecycle.Broadcaster

	root   string
	hasher *Hasher

	// scanMu serializes scans so events are emitted in state order.
	scanMu sync.Mutex

	mu      sync.RWMutex
	plugins map[string]string // plugin id -> tree digest
}

// NewPluginDirectory creates a PluginDirectory rooted at root. No plugin is
// loaded until Scan runs.
func NewPluginDirectory(root string, hasher *Hasher) *PluginDirectory {
	return &PluginDirectory{
		root:    root,
		hasher:  hasher,
		plugins: make(map[string]string),
	}
}

// Root returns the plugins directory.
func (d *PluginDirectory) Root() string {
	return d.root
}

// Plugins returns the ids of the loaded plugins in sorted order.
func (d *PluginDirectory) Plugins() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.plugins))
	for id := range d.plugins {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Lookup reads resourcePath from the directory of a loaded plugin.
func (d *PluginDirectory) Lookup(ctx context.Context, pluginID, resourcePath string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	d.mu.RLock()
	_, loaded := d.plugins[pluginID]
	d.mu.RUnlock()
	if !loaded {
		return nil, false, nil
	}

	dir := filepath.Join(d.root, pluginID)
	content, found, err := readResource(dir, resourcePath)
	if err != nil {
		return nil, false, zerr.With(err, "plugin", pluginID)
	}
	if !found {
		if _, statErr := os.Stat(dir); errors.Is(statErr, fs.ErrNotExist) {
			return nil, false, zerr.With(zerr.Wrap(domain.ErrPluginUnavailable, "plugin directory removed"),
				"plugin", pluginID)
		}
	}
	return content, found, nil
}

// Scan compares the directory with the known plugin set, updates it, and emits
// one lifecycle event per change. Events are emitted after the new state is visible
// to Lookup. A missing root is treated as an empty plugin set.
func (d *PluginDirectory) Scan() error {
	d.scanMu.Lock()
	defer d.scanMu.Unlock()

	current, err := d.fingerprints()
	if err != nil {
		return err
	}

	d.mu.Lock()
	events := diffPlugins(d.plugins, current)
	d.plugins = current
	d.mu.Unlock()

	for _, event := range events {
		d.Emit(event)
	}
	return nil
}

// fingerprints computes the tree digest of every plugin directory.
func (d *PluginDirectory) fingerprints() (map[string]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list plugins directory"), "path", d.root)
	}

	current := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || IsHidden(entry.Name()) {
			continue
		}
		digest, err := d.hasher.ComputeTreeHash(filepath.Join(d.root, entry.Name()))
		if err != nil {
			return nil, zerr.With(err, "plugin", entry.Name())
		}
		current[entry.Name()] = digest
	}
	return current, nil
}

// diffPlugins returns the lifecycle events that turn previous into current,
// ordered by plugin id.
func diffPlugins(previous, current map[string]string) []domain.LifecycleEvent {
	ids := make([]string, 0, len(previous)+len(current))
	for id := range previous {
		ids = append(ids, id)
	}
	for id := range current {
		if _, ok := previous[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var events []domain.LifecycleEvent
	for _, id := range ids {
		before, existed := previous[id]
		after, exists := current[id]

		switch {
		case existed && !exists:
			events = append(events, domain.LifecycleEvent{Kind: domain.PluginUnloaded, PluginID: id})
		case !existed && exists:
			events = append(events, domain.LifecycleEvent{Kind: domain.PluginLoaded, PluginID: id})
		case before != after:
			events = append(events, domain.LifecycleEvent{Kind: domain.PluginUpdated, PluginID: id})
		}
	}
	return events
}
