package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/config"
	"github.com/manav03panchal/daybook/internal/storage"
)

// Config command flags.
var configInitFlagForce bool

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Show the effective configuration",
	Long: `Show the configuration Daybook runs with after merging the defaults, the
config file and DAYBOOK_* environment variables.

Examples:
  daybook config
  daybook config path
  daybook config init`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configPathCmd prints the config file location.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(configPath())
	},
}

// configInitCmd writes the effective configuration to the config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Long: `Write the effective configuration to the config file so it can be edited.
An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitFlagForce, "force", false, "Replace an existing config file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the JSON view of the effective configuration.
type ConfigResponse struct {
	Path    string `json:"path"`
	Addr    string `json:"addr"`
	Driver  string `json:"driver"`
	Storage string `json:"storage_path"`
	Zone    string `json:"timezone"`
	Origins string `json:"cors_origins"`
	Log     string `json:"log_level"`
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultConfigPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config
	storagePath := cfg.Storage.Path
	if storagePath == "" {
		storagePath = storage.DefaultPath(ctx.Store.Driver())
	}

	resp := ConfigResponse{
		Path:    configPath(),
		Addr:    cfg.Server.Addr,
		Driver:  string(ctx.Store.Driver()),
		Storage: storagePath,
		Zone:    ctx.Location.String(),
		Origins: cfg.Server.CORSOrigins,
		Log:     cfg.Log.Level,
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(resp)
	}

	f := ctx.Formatter
	f.Printf("config file:     %s\n", resp.Path)
	f.Printf("server.addr:     %s\n", resp.Addr)
	f.Printf("server.cors:     %s\n", resp.Origins)
	f.Printf("storage.driver:  %s\n", resp.Driver)
	f.Printf("storage.path:    %s\n", resp.Storage)
	f.Printf("tracker.zone:    %s\n", resp.Zone)
	f.Printf("log.level:       %s\n", resp.Log)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.WriteFile(path, ctx.Config.File(), configInitFlagForce); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "written", "path": path})
	}
	ctx.CLIFormatter().Success("Wrote " + path)
	return nil
}
