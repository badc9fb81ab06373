// Package cmd provides the CLI commands for Daybook.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/output"
	"github.com/manav03panchal/daybook/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagConfig string
	flagFormat string
	flagJSON   bool
	flagColor  string
	flagDebug  bool
	flagDriver string
	flagPath   string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Log, browse and summarise your working time",
	Long: `Daybook records timed work sessions grouped by calendar day, tagged with a
project and a category, and summarises them per day, week or date range.

Examples:
  daybook log acme design 1h30m from 9am
  daybook log acme meetings from 14:00 to 15:15 with sprint planning
  daybook day yesterday
  daybook week
  daybook stats --period month
  daybook serve`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that never touch the store (but allow __complete for dynamic completions)
		if skipsRuntime(cmd) {
			return nil
		}

		opts, err := runtimeOptions()
		if err != nil {
			return err
		}

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		cmd.SetContext(logging.WithOperation(cmd.Context(), cmd.CommandPath()))
		ctx.Debugf("runtime ready", "command", cmd.CommandPath(), "driver", string(ctx.Store.Driver()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeContext()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today
		return runDay(cmd, nil)
	},
}

func skipsRuntime(cmd *cobra.Command) bool {
	switch cmd.CommandPath() {
	case "daybook completion", "daybook version", "daybook help", "daybook config path":
		return true
	}
	return cmd.Name() == "help"
}

// runtimeOptions turns the global flags into runtime options.
func runtimeOptions() (runtime.Options, error) {
	opts := runtime.DefaultOptions()
	if flagConfig != "" {
		opts.ConfigPath = flagConfig
	}
	opts.Driver = flagDriver
	opts.Path = flagPath
	opts.Debug = flagDebug

	format, err := parseFormat()
	if err != nil {
		return opts, err
	}
	opts.Format = format

	colorMode, err := parseColorMode()
	if err != nil {
		return opts, err
	}
	opts.ColorMode = colorMode

	return opts, nil
}

func parseFormat() (output.Format, error) {
	if flagJSON {
		return output.FormatJSON, nil
	}
	switch flagFormat {
	case "", "cli":
		return output.FormatCLI, nil
	case "json":
		return output.FormatJSON, nil
	default:
		return "", errors.NewUserErrorWithField("format", flagFormat,
			"unknown output format", "Use --format cli or --format json.")
	}
}

func parseColorMode() (output.ColorMode, error) {
	switch flagColor {
	case "", "auto":
		return output.ColorAuto, nil
	case "always":
		return output.ColorAlways, nil
	case "never":
		return output.ColorNever, nil
	default:
		return "", errors.NewUserErrorWithField("color", flagColor,
			"unknown color mode", "Use --color auto, always or never.")
	}
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd, err := rootCmd.ExecuteC()
	if cerr := closeContext(); err == nil {
		err = cerr
	}
	if err == nil {
		return runtime.ExitOK
	}
	op := rootCmd.Name()
	if cmd != nil {
		op = cmd.Name()
	}
	return runtime.Report(errorFormatter(), op, err)
}

// errorFormatter returns a formatter for error output. It still honours
// --format and --color when the runtime context could not be built.
func errorFormatter() *output.Formatter {
	f := output.NewFormatter()
	f.Writer = rootCmd.ErrOrStderr()
	if format, err := parseFormat(); err == nil {
		f.Format = format
		if format == output.FormatJSON {
			f.Writer = rootCmd.OutOrStdout()
		}
	}
	if mode, err := parseColorMode(); err == nil {
		f.ColorMode = mode
	}
	return f
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/daybook/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false,
		"Shorthand for --format json")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "",
		"Storage driver: badger, file, sqlite")
	rootCmd.PersistentFlags().StringVar(&flagPath, "path", "",
		"Storage path (\":memory:\" for a throwaway store)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletions("cli", "json"))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixedCompletions("auto", "always", "never"))
	_ = rootCmd.RegisterFlagCompletionFunc("driver", fixedCompletions("badger", "file", "sqlite"))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("daybook %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
