// Package config handles the global bibman configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/bibman/config.yml.
type Config struct {
	ADSToken string `yaml:"ads_token,omitempty"`
	Paper    string `yaml:"paper,omitempty"`    // page size passed to dvips
	DataDir  string `yaml:"data_dir,omitempty"` // database location override
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bibman"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DataDirName is the default database directory under the home dir.
	DataDirName = ".bibman"

	// DefaultPaper is the page size used when none is configured.
	DefaultPaper = "letter"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/bibman/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the configuration file, applying defaults. A missing file
// yields the default configuration, not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}
	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if cfg.Paper == "" {
		cfg.Paper = DefaultPaper
	}
	if cfg.DataDir != "" {
		cfg.DataDir = ExpandTilde(cfg.DataDir)
	}

	configCache = cfg
	return cfg, nil
}

// Save writes the configuration file, creating its directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	configCache = nil
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// Root returns the database data directory: the configured data_dir when
// set, otherwise ~/.bibman.
func (c *Config) Root() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DataDirName), nil
}

// Get returns a configuration value by key name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "ads_token":
		return c.ADSToken, nil
	case "paper":
		return c.Paper, nil
	case "data_dir":
		return c.DataDir, nil
	}
	return "", fmt.Errorf("unknown config key: %s", key)
}

// Set updates a configuration value by key name. The caller saves.
func (c *Config) Set(key, value string) error {
	switch key {
	case "ads_token":
		c.ADSToken = value
	case "paper":
		c.Paper = value
	case "data_dir":
		c.DataDir = ExpandTilde(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory. Returns
// the path unchanged when it doesn't start with ~ or the home directory
// is unknown.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
