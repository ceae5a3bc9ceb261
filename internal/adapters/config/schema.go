package config

// Assetfile represents the structure of the assetd.yaml configuration file.
type Assetfile struct {
	Version string    `yaml:"version"`
	Plugins DirDTO    `yaml:"plugins"`
	Static  DirDTO    `yaml:"static"`
	Server  ServerDTO `yaml:"server"`
	Chain   ChainDTO  `yaml:"chain"`
}

// DirDTO points at a directory on disk.
type DirDTO struct {
	Dir string `yaml:"dir"`
}

// ServerDTO configures the HTTP adapter.
type ServerDTO struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// ChainDTO configures the resolution chain.
type ChainDTO struct {
	// Cache is a pointer so that an omitted key keeps the default.
	Cache      *bool       `yaml:"cache"`
	Compressed bool        `yaml:"compressed"`
	Manifest   bool        `yaml:"manifest"`
	Strategy   StrategyDTO `yaml:"strategy"`
}

// StrategyDTO configures the version strategies.
type StrategyDTO struct {
	Fixed   FixedDTO   `yaml:"fixed"`
	Content ContentDTO `yaml:"content"`
}

// FixedDTO configures the fixed version strategy.
type FixedDTO struct {
	Enabled bool     `yaml:"enabled"`
	Version string   `yaml:"version"`
	Paths   []string `yaml:"paths"`
}

// ContentDTO configures the content version strategy.
type ContentDTO struct {
	Enabled bool     `yaml:"enabled"`
	Paths   []string `yaml:"paths"`
}
