// Package config provides centralized configuration for Daybook.
// Values come from built-in defaults, then an optional TOML file, then
// DAYBOOK_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manav03panchal/daybook/internal/storage"
)

// RuntimeConfig holds every configurable value.
type RuntimeConfig struct {
	// HTTP server configuration
	Server ServerConfig

	// Storage configuration
	Storage StorageConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8000"
	Addr string

	// ReadTimeout bounds reading a request.
	// Default: 10s
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response.
	// Default: 10s
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration

	// CORSOrigins is the comma-separated list of allowed origins.
	// Default: "*"
	CORSOrigins string
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Driver selects the backend: badger, file or sqlite.
	// Default: badger
	Driver string

	// Path is the backend location. Empty means the driver's XDG default.
	Path string
}

// TrackerConfig holds domain settings.
type TrackerConfig struct {
	// Timezone decides the calendar day of a start time when no date is given.
	// Default: UTC
	Timezone string
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: info
	Level string

	// Format is text or json.
	// Default: text
	Format string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			CORSOrigins:     "*",
		},
		Storage: StorageConfig{
			Driver: string(storage.DriverBadger),
		},
		Tracker: TrackerConfig{
			Timezone: "UTC",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (a missing
// file is fine) and the environment, then validates it.
func Load(path string) (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyFile(file)
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromEnv loads configuration overrides from environment variables.
// Unparseable values are ignored.
func (c *RuntimeConfig) loadFromEnv() {
	// Server configuration
	if v := os.Getenv("DAYBOOK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DAYBOOK_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("DAYBOOK_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.WriteTimeout = d
		}
	}
	if v := os.Getenv("DAYBOOK_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}
	if v := os.Getenv("DAYBOOK_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = v
	}

	// Storage configuration
	if v := os.Getenv("DAYBOOK_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("DAYBOOK_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}

	// Tracker configuration
	if v := os.Getenv("DAYBOOK_TIMEZONE"); v != "" {
		c.Tracker.Timezone = v
	}

	// Logging configuration
	if v := os.Getenv("DAYBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DAYBOOK_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate checks values that would otherwise fail later and far from their source.
func (c *RuntimeConfig) Validate() error {
	if _, err := storage.ParseDriver(c.Storage.Driver); err != nil {
		return fmt.Errorf("storage.driver: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("tracker.timezone: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want text or json)", c.Log.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is empty")
	}
	return nil
}

// Location resolves Tracker.Timezone. Empty means UTC.
func (c *RuntimeConfig) Location() (*time.Location, error) {
	if c.Tracker.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Tracker.Timezone)
}

// StorageOptions converts the storage section to storage.Options.
func (c *RuntimeConfig) StorageOptions() storage.Options {
	driver, _ := storage.ParseDriver(c.Storage.Driver)
	return storage.Options{Driver: driver, Path: c.Storage.Path}
}

// Origins splits CORSOrigins into trimmed, non-empty entries.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
