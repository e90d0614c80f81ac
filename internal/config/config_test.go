package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Provider.Backend != BackendTaskwarrior {
		t.Errorf("got backend %q, want %q", cfg.Provider.Backend, BackendTaskwarrior)
	}
	if cfg.Taskwarrior.Command != "task" {
		t.Errorf("got command %q, want %q", cfg.Taskwarrior.Command, "task")
	}
	if cfg.UI.Refresh != 1 {
		t.Errorf("got refresh %d, want 1", cfg.UI.Refresh)
	}
	if cfg.UI.Scheduled != "today" {
		t.Errorf("got scheduled %q, want %q", cfg.UI.Scheduled, "today")
	}
	if cfg.UI.HideCompleted {
		t.Error("expected completed tasks shown by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider.Backend != BackendTaskwarrior {
			t.Errorf("got backend %q, want default", cfg.Provider.Backend)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[provider]
backend = "sqlite"

[storage]
db_path = "/tmp/tasks.db"

[ui]
refresh = 5
scheduled = "tomorrow"
hide_project = true
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider.Backend != BackendSQLite {
			t.Errorf("got backend %q, want %q", cfg.Provider.Backend, BackendSQLite)
		}
		if cfg.UI.Refresh != 5 {
			t.Errorf("got refresh %d, want 5", cfg.UI.Refresh)
		}
		if cfg.UI.Scheduled != "tomorrow" {
			t.Errorf("got scheduled %q, want %q", cfg.UI.Scheduled, "tomorrow")
		}
		if !cfg.UI.HideProject {
			t.Error("expected hide_project to be set")
		}
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Error("expected an error for malformed toml")
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TASKSCHEDULE_BACKEND", "sqlite")
	t.Setenv("TASKSCHEDULE_DB_PATH", "/tmp/override.db")
	t.Setenv("TASKSCHEDULE_REFRESH", "10")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.Backend != BackendSQLite {
		t.Errorf("got backend %q, want %q", cfg.Provider.Backend, BackendSQLite)
	}
	if cfg.Storage.DBPath != "/tmp/override.db" {
		t.Errorf("got db path %q, want override", cfg.Storage.DBPath)
	}
	if cfg.UI.Refresh != 10 {
		t.Errorf("got refresh %d, want 10", cfg.UI.Refresh)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid default",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Provider.Backend = "redis" },
			wantErr: true,
		},
		{
			name:    "zero refresh",
			mutate:  func(c *Config) { c.UI.Refresh = 0 },
			wantErr: true,
		},
		{
			name:    "negative refresh",
			mutate:  func(c *Config) { c.UI.Refresh = -3 },
			wantErr: true,
		},
		{
			name:    "empty window",
			mutate:  func(c *Config) { c.UI.Scheduled = "" },
			wantErr: true,
		},
		{
			name:    "empty taskwarrior command",
			mutate:  func(c *Config) { c.Taskwarrior.Command = "" },
			wantErr: true,
		},
		{
			name: "sqlite without db path",
			mutate: func(c *Config) {
				c.Provider.Backend = BackendSQLite
				c.Storage.DBPath = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.UI.Refresh = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.UI.Refresh != 7 {
		t.Errorf("got refresh %d, want 7", loaded.UI.Refresh)
	}
}
