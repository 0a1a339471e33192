// Package config persists the tool's directory configuration between runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the user config dir.
const DefaultFileName = "docledger.yaml"

// Config holds the persisted settings. The per-run input file list is
// deliberately not part of it; only the stable directories survive a
// restart.
type Config struct {
	// Ledger is the tracking workbook path.
	Ledger string `yaml:"ledger"`
	// TargetDir holds the live document copies.
	TargetDir string `yaml:"target_dir"`
	// ArchiveDir holds superseded copies.
	ArchiveDir string `yaml:"archive_dir"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		TargetDir:  filepath.Join(home, "Documents"),
		ArchiveDir: filepath.Join(home, "Documents", "Archive"),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(dir, "docledger", DefaultFileName)
}

// Load reads the config at path, falling back to Default when the file
// does not exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
