package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/parser"
)

// Start command flags.
var startFlags parser.LogFlags

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:     "start [PROJECT [CATEGORY]] [from TIME] [on DATE] [with NOTE]",
	Aliases: []string{"s", "on"},
	Short:   "Start a timer",
	Long: `Start a timer for a session that is still going. 'daybook stop' logs it as
an entry. A timer that is already running is stopped where the new one starts.

Examples:
  daybook start acme design
  daybook start acme meetings from 9:30 with sprint planning
  daybook start --project acme --from "20 minutes ago"`,
	RunE: runStart,
}

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// cancelCmd represents the cancel command.
var cancelCmd = &cobra.Command{
	Use:     "cancel",
	Aliases: []string{"reset"},
	Short:   "Discard the running timer without logging it",
	Args:    cobra.NoArgs,
	RunE:    runCancel,
}

func init() {
	startCmd.Flags().StringVarP(&startFlags.Project, "project", "p", "", "Project name")
	startCmd.Flags().StringVarP(&startFlags.Category, "category", "c", "", "Category name")
	startCmd.Flags().StringVarP(&startFlags.Note, "note", "n", "", "Description of the session")
	startCmd.Flags().StringVar(&startFlags.Start, "from", "", "Start time (default now)")
	startCmd.Flags().StringVar(&startFlags.Date, "date", "", "Day the entry belongs to")

	_ = startCmd.RegisterFlagCompletionFunc("project", completeLabels(model.KindProject))
	_ = startCmd.RegisterFlagCompletionFunc("category", completeLabels(model.KindCategory))

	rootCmd.AddCommand(startCmd, statusCmd, cancelCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	parsed := parser.ParseLogArgs(args)
	parsed.Merge(startFlags)
	if err := parsed.ProcessStart(ctx.Now(), ctx.Location); err != nil {
		return err
	}
	ctx.Debugf("start parsed", "project", parsed.Project, "category", parsed.Category, "start", parsed.Start)

	timer, stopped, err := ctx.Tracker.StartTimer(cmd.Context(), parsed.Input())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTimer("started", timer, stopped)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintTimerStarted(timer, stopped, colors)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, err := ctx.Tracker.Timer(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTimerStatus(status)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintTimerStatus(status, colors)
	return nil
}

func runCancel(cmd *cobra.Command, args []string) error {
	timer, err := ctx.Tracker.CancelTimer(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTimer("cancelled", timer, nil)
	}
	ctx.CLIFormatter().PrintTimerCancelled(timer)
	return nil
}
