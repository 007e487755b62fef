// Package config reads and writes the fintrail.yaml client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name inside the data directory.
const FileName = "fintrail.yaml"

// Config represents the top-level fintrail.yaml configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Profile  ProfileConfig  `yaml:"profile"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// ServerConfig points the client at its API server.
type ServerConfig struct {
	URL string `yaml:"url"`
}

// ProfileConfig holds user preferences for the analytics commands.
type ProfileConfig struct {
	CurrentAge int `yaml:"current_age,omitempty"`
	TargetAge  int `yaml:"target_age,omitempty"`
}

// DefaultsConfig holds list and import defaults.
type DefaultsConfig struct {
	PageLimit    int    `yaml:"page_limit"`
	StatementDir string `yaml:"statement_dir,omitempty"`
	ExportDir    string `yaml:"export_dir,omitempty"`
}

// DataDir returns the per-user data directory (config, session, audit log).
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "fintrail"), nil
}

// Load reads a fintrail.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(serverURL string) *Config {
	return &Config{
		Server: ServerConfig{URL: serverURL},
		Defaults: DefaultsConfig{
			PageLimit: 20,
		},
	}
}
