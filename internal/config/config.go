// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Backend names for the task provider.
const (
	BackendTaskwarrior = "taskwarrior"
	BackendSQLite      = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Provider    ProviderConfig    `toml:"provider"`
	Taskwarrior TaskwarriorConfig `toml:"taskwarrior"`
	Storage     StorageConfig     `toml:"storage"`
	UI          UIConfig          `toml:"ui"`
}

// ProviderConfig selects the task store backend.
type ProviderConfig struct {
	Backend string `toml:"backend"` // "taskwarrior" or "sqlite"
}

// TaskwarriorConfig holds taskwarrior invocation settings.
type TaskwarriorConfig struct {
	Command string   `toml:"command"` // binary name or path
	Args    []string `toml:"args"`    // extra rc overrides
}

// StorageConfig holds settings for the sqlite backend.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds dashboard defaults, each overridable by a CLI flag.
type UIConfig struct {
	Refresh       int    `toml:"refresh"`         // seconds between ticks
	Scheduled     string `toml:"scheduled"`       // default window selector
	ShowAllHours  bool   `toml:"show_all_hours"`  // show empty hours before the first task
	HideCompleted bool   `toml:"hide_completed"`  // drop completed tasks
	HideProject   bool   `toml:"hide_project"`    // drop the project column
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Backend: BackendTaskwarrior,
		},
		Taskwarrior: TaskwarriorConfig{
			Command: "task",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Refresh:   1,
			Scheduled: "today",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskschedule.db"
	}
	return filepath.Join(home, ".local", "share", "taskschedule", "tasks.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taskschedule", "config.toml")
}

// Load loads configuration from the default path, merging with defaults
// and environment variables.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKSCHEDULE_BACKEND"); v != "" {
		cfg.Provider.Backend = v
	}
	if v := os.Getenv("TASKSCHEDULE_TASK_COMMAND"); v != "" {
		cfg.Taskwarrior.Command = v
	}
	if v := os.Getenv("TASKSCHEDULE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TASKSCHEDULE_REFRESH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.Refresh = n
		}
	}
	if v := os.Getenv("TASKSCHEDULE_SCHEDULED"); v != "" {
		cfg.UI.Scheduled = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Provider.Backend {
	case BackendTaskwarrior:
		if c.Taskwarrior.Command == "" {
			return errors.New("taskwarrior command must be set")
		}
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown provider backend %q", c.Provider.Backend)
	}

	if c.UI.Refresh < 1 {
		return errors.New("refresh must be a positive number of seconds")
	}
	if c.UI.Scheduled == "" {
		return errors.New("scheduled window must not be empty")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
