// Package runtime provides application runtime context for Daybook.
package runtime

import (
	"os"
	"time"

	"github.com/manav03panchal/daybook/internal/config"
	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/output"
	"github.com/manav03panchal/daybook/internal/storage"
	"github.com/manav03panchal/daybook/internal/tracker"
)

// MemoryPath as a storage path opens a throwaway store.
const MemoryPath = ":memory:"

// Context holds the application runtime context.
type Context struct {
	Config    *config.RuntimeConfig
	Store     *storage.Store
	Tracker   *tracker.Service
	Formatter *output.Formatter
	Location  *time.Location

	// Debug mode
	Debug bool
}

// Options configures the runtime context. Non-empty fields override the
// loaded configuration.
type Options struct {
	ConfigPath string
	Driver     string
	Path       string
	InMemory   bool
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		ConfigPath: config.DefaultConfigPath(),
		Format:     output.FormatCLI,
		ColorMode:  output.ColorAuto,
	}
}

// New loads configuration, initialises logging and opens the store.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Driver != "" {
		cfg.Storage.Driver = opts.Driver
	}
	if opts.Path != "" {
		cfg.Storage.Path = opts.Path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	initLogging(cfg, opts.Debug)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	storeOpts := cfg.StorageOptions()
	if opts.InMemory || storeOpts.Path == MemoryPath {
		storeOpts.InMemory = true
		storeOpts.Path = ""
	}

	store, err := storage.Open(storeOpts)
	if err != nil {
		return nil, err
	}

	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}
	formatter.Location = loc

	return &Context{
		Config:    cfg,
		Store:     store,
		Tracker:   tracker.New(store, tracker.Options{Location: loc}),
		Formatter: formatter,
		Location:  loc,
		Debug:     opts.Debug,
	}, nil
}

func initLogging(cfg *config.RuntimeConfig, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		JSON:   cfg.Log.Format == "json",
		Output: os.Stderr,
	})
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.IsJSON()
}

// Now returns the current time in the configured location.
func (c *Context) Now() time.Time {
	return time.Now().In(c.Location)
}

// Debugf logs a debug message when debug mode is enabled.
func (c *Context) Debugf(msg string, args ...any) {
	if c.Debug {
		logging.DebugLog(msg, args...)
	}
}
