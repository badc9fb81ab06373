package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/errors"
)

// Reindex command flags.
var reindexFlagCheck bool

// reindexCmd represents the reindex command.
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the entry index from the stored days",
	Long: `Rebuild the entry-id index by scanning every stored day. Run this after
restoring a backup or copying day files in by hand, so that edit and rm can
find every entry again. With --check the store is only inspected.

Examples:
  daybook reindex
  daybook reindex --check`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func init() {
	reindexCmd.Flags().BoolVar(&reindexFlagCheck, "check", false, "Report problems without changing anything")

	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) error {
	if reindexFlagCheck {
		return runCheck(cmd)
	}

	n, err := ctx.Tracker.Reindex(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReindex(n)
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Indexed %d entries", n))
	return nil
}

func runCheck(cmd *cobra.Command) error {
	status := ctx.Tracker.Check(cmd.Context())

	var err error
	if ctx.IsJSON() {
		err = ctx.JSONFormatter().PrintHealth(status)
	} else {
		ctx.CLIFormatter().PrintHealth(status)
	}
	if err != nil {
		return err
	}

	if !status.Healthy {
		return errors.NewSystemError(
			fmt.Sprintf("storage check found %d problem(s), 'daybook reindex' repairs index drift", status.ErrorCount),
			errors.ErrDatabaseCorrupted,
		)
	}
	return nil
}
