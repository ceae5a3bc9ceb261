package domain

// LifecycleKind tags a plugin lifecycle transition.
type LifecycleKind int

const (
	// PluginLoaded is emitted when a plugin becomes available.
	PluginLoaded LifecycleKind = iota
	// PluginUnloaded is emitted when a plugin is removed.
	PluginUnloaded
	// PluginUpdated is emitted when a loaded plugin changes its contents.
	PluginUpdated
)

// String returns a string representation of the kind.
func (k LifecycleKind) String() string {
	switch k {
	case PluginLoaded:
		return "loaded"
	case PluginUnloaded:
		return "unloaded"
	case PluginUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// LifecycleEvent notifies that a plugin was loaded, unloaded, or updated.
type LifecycleEvent struct {
	Kind     LifecycleKind
	PluginID string
}
