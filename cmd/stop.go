package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/parser"
)

// Stop command flags.
var (
	stopFlagNote string
	stopFlagEnd  string
)

// stopCmd represents the stop command.
var stopCmd = &cobra.Command{
	Use:     "stop [at TIME] [with NOTE]",
	Aliases: []string{"end"},
	Short:   "Stop the running timer and log it",
	Long: `Stop the running timer and log it as an entry. The note is appended to the
one given at start.

Examples:
  daybook stop
  daybook stop at 17:30
  daybook stop 10 minutes ago with wrapped up the review`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVarP(&stopFlagNote, "note", "n", "", "Note to append to the description")
	stopCmd.Flags().StringVar(&stopFlagEnd, "to", "", "End time (default now)")

	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	parsed := parser.ParseStopArgs(args)
	parsed.Merge(stopFlagEnd, stopFlagNote)
	if err := parsed.Process(ctx.Now(), ctx.Location); err != nil {
		return err
	}

	entry, err := ctx.Tracker.StopTimer(cmd.Context(), parsed.End, parsed.Note)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("stopped", entry)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintEntrySaved("Logged", entry, colors)
	return nil
}
