package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/api"
	"github.com/manav03panchal/daybook/internal/logging"
)

// Serve command flags.
var serveFlagAddr string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Daybook HTTP API",
	Long: `Serve the JSON API under /api until interrupted. The listen address,
timeouts and allowed CORS origins come from the [server] section of the config
file or the DAYBOOK_ADDR, DAYBOOK_*_TIMEOUT and DAYBOOK_CORS_ORIGINS
environment variables.

Examples:
  daybook serve
  daybook serve --addr 127.0.0.1:9000
  DAYBOOK_STORAGE_DRIVER=sqlite daybook serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "Listen address (overrides server.addr)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := ctx.Config.Server
	if serveFlagAddr != "" {
		cfg.Addr = serveFlagAddr
	}

	srv := api.NewServer(api.Config{
		Addr:            cfg.Addr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		CORSOrigins:     cfg.Origins(),
		AccessLog:       os.Stderr,
	}, ctx.Tracker)

	logging.Info("serving",
		logging.KeyDriver, string(ctx.Store.Driver()),
		"timezone", ctx.Location.String(),
	)
	return srv.Run(runCtx)
}
