package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "tiers.yaml"

// Config is everything loaded from tiers.yaml.
type Config struct {
	Tables  `yaml:",inline"`
	Session SessionSettings `yaml:"session"`
}

// Load loads tier tables and session settings, then applies environment
// overrides to the session settings.
// Search order: customPath -> ~/.minilab/configs/tiers.yaml -> ./configs/tiers.yaml -> embedded default
//
// Keys missing from a file keep their built-in values.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Tables.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Session.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadTables loads only the tier tables, using the same search order as Load.
func LoadTables(customPath string) (Tables, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg.Tables, err
	}
	return cfg.Tables, cfg.Tables.Validate()
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTiersYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the built-in defaults.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	cfg.Session.normalize()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minilab", "configs", filename)
}
