package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/manav03panchal/daybook/internal/storage"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	// Server defaults
	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected Server.Addr = :8000, got %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected Server.ReadTimeout = 10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.CORSOrigins != "*" {
		t.Errorf("expected Server.CORSOrigins = *, got %q", cfg.Server.CORSOrigins)
	}

	// Storage defaults
	if cfg.Storage.Driver != "badger" {
		t.Errorf("expected Storage.Driver = badger, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("expected empty Storage.Path, got %q", cfg.Storage.Path)
	}

	// Tracker defaults
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("default location: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("expected UTC, got %v", loc)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("DAYBOOK_ADDR", "127.0.0.1:9000")
	t.Setenv("DAYBOOK_READ_TIMEOUT", "30s")
	t.Setenv("DAYBOOK_STORAGE_DRIVER", "sqlite")
	t.Setenv("DAYBOOK_TIMEZONE", "Europe/Berlin")

	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected Server.Addr from env, got %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected Server.ReadTimeout = 30s from env, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("expected Storage.Driver = sqlite from env, got %q", cfg.Storage.Driver)
	}
	if cfg.Tracker.Timezone != "Europe/Berlin" {
		t.Errorf("expected Tracker.Timezone from env, got %q", cfg.Tracker.Timezone)
	}
}

func TestConfigLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("DAYBOOK_READ_TIMEOUT", "invalid")
	t.Setenv("DAYBOOK_WRITE_TIMEOUT", "ten seconds")

	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()

	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected Server.ReadTimeout = 10s (default), got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("expected Server.WriteTimeout = 10s (default), got %v", cfg.Server.WriteTimeout)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"
write_timeout = "1m"
cors_origins = "http://localhost:3000, http://example.com"

[storage]
driver = "file"
path = "/tmp/daybook-data"

[tracker]
timezone = "UTC"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected Server.Addr = :9090, got %q", cfg.Server.Addr)
	}
	if cfg.Server.WriteTimeout != time.Minute {
		t.Errorf("expected Server.WriteTimeout = 1m, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("unset key should keep default, got %v", cfg.Server.ReadTimeout)
	}
	origins := cfg.Server.Origins()
	if len(origins) != 2 || origins[1] != "http://example.com" {
		t.Errorf("unexpected origins %v", origins)
	}

	opts := cfg.StorageOptions()
	if opts.Driver != storage.DriverFile || opts.Path != "/tmp/daybook-data" {
		t.Errorf("unexpected storage options %+v", opts)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "file"
`)
	t.Setenv("DAYBOOK_STORAGE_DRIVER", "sqlite")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("expected env to win, got %q", cfg.Storage.Driver)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected defaults, got %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown driver", "[storage]\ndriver = \"postgres\"\n", "storage.driver"},
		{"unknown timezone", "[tracker]\ntimezone = \"Mars/Olympus\"\n", "tracker.timezone"},
		{"unknown key", "[server]\nport = 80\n", "unknown key"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n", "decode"},
		{"bad format", "[log]\nformat = \"xml\"\n", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.toml" || filepath.Base(filepath.Dir(path)) != "daybook" {
		t.Errorf("unexpected default config path %q", path)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Server.WriteTimeout = 90 * time.Second
	cfg.Tracker.Timezone = "Europe/Berlin"

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteFile(path, cfg.File(), false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.Contains(string(data), "path") {
		t.Errorf("empty storage path should be left out:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.WriteTimeout != 90*time.Second {
		t.Errorf("expected WriteTimeout = 1m30s, got %v", loaded.Server.WriteTimeout)
	}
	if loaded.Tracker.Timezone != "Europe/Berlin" {
		t.Errorf("expected timezone to round-trip, got %q", loaded.Tracker.Timezone)
	}
}

func TestWriteFileKeepsExisting(t *testing.T) {
	path := writeConfig(t, "[tracker]\ntimezone = \"UTC\"\n")

	if err := WriteFile(path, DefaultRuntimeConfig().File(), false); err == nil {
		t.Fatal("expected an error for an existing file")
	}
	if err := WriteFile(path, DefaultRuntimeConfig().File(), true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}
