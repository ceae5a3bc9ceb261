package ports

import "go.trai.ch/assetd/internal/core/domain"

// Settings is the loaded configuration of an asset server instance.
type Settings struct {
	// Chain configures the resolution chain.
	Chain domain.ChainConfig
	// PluginsDir is the directory whose subdirectories are plugins.
	PluginsDir string
	// StaticDir is the optional host static directory used as fallback.
	StaticDir string
	// Addr is the listen address of the HTTP adapter.
	Addr string
	// Prefix is the URL prefix under which assets are served.
	Prefix string
}

// ConfigLoader defines the interface for loading the server configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path.
	Load(path string) (*Settings, error)
}
