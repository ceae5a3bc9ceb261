// Package config provides the configuration loader for assetd.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

const (
	// FileName is the conventional name of the configuration file.
	FileName = "assetd.yaml"

	// DefaultAddr is the listen address used when the file does not set one.
	DefaultAddr = ":8080"
	// DefaultPrefix is the URL prefix used when the file does not set one.
	DefaultPrefix = "/"
	// DefaultPluginsDir is the plugins directory used when the file does not set one.
	DefaultPluginsDir = "plugins"

	supportedVersion = "1"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path.
// If path is a directory, FileName inside it is read. Relative directories in
// the file are resolved against the directory containing the file.
func (l *Loader) Load(path string) (*ports.Settings, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Assetfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Version != "" && file.Version != supportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfiguration, "unsupported config version"),
			"version", file.Version)
	}

	settings := l.toSettings(&file, filepath.Dir(path))
	if err := settings.Chain.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return settings, nil
}

func (l *Loader) toSettings(file *Assetfile, baseDir string) *ports.Settings {
	cache := true
	if file.Chain.Cache != nil {
		cache = *file.Chain.Cache
	}
	if !cache && l.Logger != nil {
		l.Logger.Warn("resolution cache disabled, every request walks the chain")
	}

	pluginsDir := file.Plugins.Dir
	if pluginsDir == "" {
		pluginsDir = DefaultPluginsDir
	}

	staticDir := resolveDir(baseDir, file.Static.Dir)

	return &ports.Settings{
		Chain: domain.ChainConfig{
			Cache:          cache,
			Compressed:     file.Chain.Compressed,
			Manifest:       file.Chain.Manifest,
			StaticFallback: staticDir != "",
			FixedVersion: domain.FixedVersionConfig{
				Enabled: file.Chain.Strategy.Fixed.Enabled,
				Version: strings.TrimSpace(file.Chain.Strategy.Fixed.Version),
				Paths:   canonicalizeStrings(file.Chain.Strategy.Fixed.Paths),
			},
			ContentVersion: domain.ContentVersionConfig{
				Enabled: file.Chain.Strategy.Content.Enabled,
				Paths:   canonicalizeStrings(file.Chain.Strategy.Content.Paths),
			},
		},
		PluginsDir: resolveDir(baseDir, pluginsDir),
		StaticDir:  staticDir,
		Addr:       withDefault(file.Server.Addr, DefaultAddr),
		Prefix:     normalizePrefix(file.Server.Prefix),
	}
}

func resolveDir(baseDir, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// normalizePrefix makes the prefix start and end with a slash.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return DefaultPrefix
	}
	return "/" + prefix + "/"
}

// canonicalizeStrings trims, sorts and deduplicates patterns.
func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	res := make([]string, 0, len(strs))
	for _, s := range strs {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}
