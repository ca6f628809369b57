// Package config loads the server configuration from a YAML file,
// falling back to defaults when the file or individual keys are missing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings.
type Config struct {
	Port         int    `yaml:"Port"`
	DatabasePath string `yaml:"DatabasePath"`

	// PolicyJSON is an inline classification policy definition passed to
	// the factory. Empty means the reference policy.
	PolicyJSON string `yaml:"PolicyJSON"`

	// RestPreset names a factory auto-rest preset applied when a
	// submission declares rest minutes without timing ("hourly" or
	// "long-shift"). Empty means countdown-from-end.
	RestPreset string `yaml:"RestPreset"`
}

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:         8080,
		DatabasePath: "shifts.db",
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "shifts.db"
	}
}
