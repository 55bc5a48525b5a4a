package nixio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gnode/neonix/nix"
)

// Config describes how to open the sink container, typically loaded
// from a neonix.yaml file.
type Config struct {
	// Path is the container location on disk. Ignored when InMemory is
	// set.
	Path string `yaml:"path"`

	// Mode is "overwrite" or "readwrite". Defaults to "overwrite".
	Mode string `yaml:"mode,omitempty"`

	// InMemory keeps the container entirely in memory.
	InMemory bool `yaml:"in_memory,omitempty"`

	// SyncWrites enables synchronous writes on flush.
	SyncWrites bool `yaml:"sync_writes,omitempty"`

	// LogLevel is one of "debug", "info", "warn", "error". Defaults to
	// "info".
	LogLevel string `yaml:"log_level,omitempty"`
}

// LoadConfig reads and parses a neonix.yaml file from the given path.
// If the path is a directory, it looks for neonix.yaml or neonix.yml in
// that directory.
func LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "neonix.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "neonix.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no neonix.yaml or neonix.yml found in %s", path)
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Path == "" && !c.InMemory {
		return fmt.Errorf("path is required unless in_memory is set")
	}
	switch c.Mode {
	case "", "overwrite", "readwrite":
	default:
		return fmt.Errorf("unknown mode %q (want overwrite or readwrite)", c.Mode)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// FileMode returns the container open mode.
func (c *Config) FileMode() nix.FileMode {
	if c.Mode == "readwrite" {
		return nix.ReadWrite
	}
	return nix.Overwrite
}

// FileOptions returns the container options implied by the
// configuration.
func (c *Config) FileOptions() []nix.FileOption {
	var opts []nix.FileOption
	if c.InMemory {
		opts = append(opts, nix.WithInMemory())
	}
	if c.SyncWrites {
		opts = append(opts, nix.WithSyncWrites(true))
	}
	return opts
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile opens the configured container.
func (c *Config) OpenFile() (*nix.File, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return nix.Open(c.Path, c.FileMode(), c.FileOptions()...)
}
