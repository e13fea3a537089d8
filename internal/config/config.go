// Package config loads service configuration from an optional YAML file
// overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultListenAddr is used when no listen address is configured.
const DefaultListenAddr = "127.0.0.1:8600"

// DBFileName is the database file created inside the state directory.
const DBFileName = "credstore.db"

// Config holds the service configuration.
//
// StateDir decides the execution context: when set, the service owns
// durable storage (full read/write/migrate/notify behavior); when
// empty, the service runs headless and keys resolve from environment
// variables only.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StateDir   string `yaml:"state_dir"`
	DBPath     string `yaml:"db_path"`
}

// Persistent reports whether durable storage is configured.
func (c *Config) Persistent() bool {
	return c.StateDir != ""
}

// Load builds the configuration in three stages: defaults, then the
// YAML file named by CREDSTORE_CONFIG (if any), then CREDSTORE_* env
// vars. DBPath defaults to <state_dir>/credstore.db when a state
// directory is configured.
func Load() (*Config, error) {
	cfg := &Config{ListenAddr: DefaultListenAddr}

	if path, ok := os.LookupEnv("CREDSTORE_CONFIG"); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if cfg.ListenAddr == "" {
			cfg.ListenAddr = DefaultListenAddr
		}
	}

	if v, ok := os.LookupEnv("CREDSTORE_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("CREDSTORE_STATE_DIR"); ok {
		cfg.StateDir = v
	}
	if v, ok := os.LookupEnv("CREDSTORE_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}

	if cfg.DBPath == "" && cfg.StateDir != "" {
		cfg.DBPath = filepath.Join(cfg.StateDir, DBFileName)
	}

	return cfg, nil
}
