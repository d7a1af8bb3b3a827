package config

import (
	_ "embed"
)

//go:embed defaults/tiers.yaml
var defaultTiersYAML []byte

// Default returns the built-in configuration without touching the filesystem
// or the environment.
func Default() Config {
	return Config{
		Tables:  DefaultTables(),
		Session: DefaultSessionSettings(),
	}
}
