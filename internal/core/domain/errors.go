package domain

import "go.trai.ch/zerr"

var (
	// ErrAdapterFailure is returned when a resource store reports an I/O or access fault.
	ErrAdapterFailure = zerr.New("resource store failure")

	// ErrTransformFailed is returned when a transformer cannot rewrite a resolved resource.
	ErrTransformFailed = zerr.New("resource transform failed")

	// ErrInvalidConfiguration is returned when the resolution chain is built from contradictory
	// or incomplete settings.
	ErrInvalidConfiguration = zerr.New("invalid chain configuration")

	// ErrPluginUnavailable is returned by a resource store when the plugin went away while a
	// lookup was in flight. Resolvers treat it as an ordinary miss.
	ErrPluginUnavailable = zerr.New("plugin unavailable")

	// ErrResourceNotFound is reported by the command line when no resolver serves a path.
	ErrResourceNotFound = zerr.New("resource not found")
)
