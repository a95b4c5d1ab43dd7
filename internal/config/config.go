// Package config persists tool-wide settings, most importantly the project
// root directory that all manifest paths are stored relative to.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"path-chronicle/internal/filesystem"
)

const (
	configDirName  = "path-chronicle"
	configFileName = "config.toml"
)

// Config holds the persisted settings.
type Config struct {
	// ProjectRoot is the absolute directory all manifest paths are relative
	// to. Empty means the root was never configured.
	ProjectRoot string `toml:"project_root"`
}

// DefaultPath returns the config file location used when no --config
// override is given.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config dir: %w", err)
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// Load reads the config file at path. A missing file yields a zero Config,
// not an error, so commands can report the unconfigured root themselves.
func Load(fs filesystem.FileSystem, path string) (*Config, error) {
	cfg := &Config{}
	if !fs.Exists(path) {
		return cfg, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config file at path, creating parent directories as needed.
// Re-saving overwrites the previous value.
func Save(fs filesystem.FileSystem, path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
