// Package config loads and saves the snapview configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-level settings. Everything has a usable default so a
// missing config file is not an error.
type Config struct {
	// Repository is the path of the local snapshot repository.
	Repository string `yaml:"repository"`
	// NumericIDs starts the browser with numeric user/group IDs.
	NumericIDs bool `yaml:"numeric_ids"`
	// Cold marks the repository as archival: file contents cannot be
	// viewed, only restored.
	Cold bool `yaml:"cold"`
	// LogFile receives all diagnostics; empty disables logging.
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// DefaultPath returns ~/.config/snapview/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "snapview", "config.yaml")
}

func defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Repository: filepath.Join(home, ".local", "share", "snapview", "repo"),
		LogFile:    filepath.Join(home, ".config", "snapview", "snapview.log"),
		LogLevel:   "info",
	}
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. Unset fields keep their default values.
func Load(path string) (Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Repository == "" {
		cfg.Repository = defaults().Repository
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
