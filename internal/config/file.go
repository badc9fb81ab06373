package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil and
// leave the defaults alone.
type FileConfig struct {
	Server  ServerFile  `toml:"server"`
	Storage StorageFile `toml:"storage"`
	Tracker TrackerFile `toml:"tracker"`
	Log     LogFile     `toml:"log"`
}

// ServerFile maps the [server] table.
type ServerFile struct {
	Addr            *string   `toml:"addr"`
	ReadTimeout     *duration `toml:"read_timeout"`
	WriteTimeout    *duration `toml:"write_timeout"`
	ShutdownTimeout *duration `toml:"shutdown_timeout"`
	CORSOrigins     *string   `toml:"cors_origins"`
}

// StorageFile maps the [storage] table.
type StorageFile struct {
	Driver *string `toml:"driver"`
	Path   *string `toml:"path"`
}

// TrackerFile maps the [tracker] table.
type TrackerFile struct {
	Timezone *string `toml:"timezone"`
}

// LogFile maps the [log] table.
type LogFile struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// duration decodes TOML strings such as "15s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/daybook/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "daybook", "config.toml")
}

// LoadFile reads a TOML config from path. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}

	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// WriteFile encodes f as TOML at path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func WriteFile(path string, f FileConfig, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config %s: %w", path, err)
	}

	if err := toml.NewEncoder(out).Encode(f); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return out.Close()
}

// File returns c as a config file with every key set. An empty storage path
// is left out so the driver default applies.
func (c *RuntimeConfig) File() FileConfig {
	f := FileConfig{
		Server: ServerFile{
			Addr:            &c.Server.Addr,
			ReadTimeout:     &duration{c.Server.ReadTimeout},
			WriteTimeout:    &duration{c.Server.WriteTimeout},
			ShutdownTimeout: &duration{c.Server.ShutdownTimeout},
			CORSOrigins:     &c.Server.CORSOrigins,
		},
		Storage: StorageFile{Driver: &c.Storage.Driver},
		Tracker: TrackerFile{Timezone: &c.Tracker.Timezone},
		Log:     LogFile{Level: &c.Log.Level, Format: &c.Log.Format},
	}
	if c.Storage.Path != "" {
		f.Storage.Path = &c.Storage.Path
	}
	return f
}

// applyFile copies every key set in f over c.
func (c *RuntimeConfig) applyFile(f FileConfig) {
	setString(&c.Server.Addr, f.Server.Addr)
	setDuration(&c.Server.ReadTimeout, f.Server.ReadTimeout)
	setDuration(&c.Server.WriteTimeout, f.Server.WriteTimeout)
	setDuration(&c.Server.ShutdownTimeout, f.Server.ShutdownTimeout)
	setString(&c.Server.CORSOrigins, f.Server.CORSOrigins)

	setString(&c.Storage.Driver, f.Storage.Driver)
	setString(&c.Storage.Path, f.Storage.Path)

	setString(&c.Tracker.Timezone, f.Tracker.Timezone)

	setString(&c.Log.Level, f.Log.Level)
	setString(&c.Log.Format, f.Log.Format)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *duration) {
	if v != nil {
		*dst = v.Duration
	}
}
