package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/parser"
)

// Log command flags.
var logFlags parser.LogFlags

// logCmd represents the log command.
var logCmd = &cobra.Command{
	Use:     "log [PROJECT [CATEGORY]] [DURATION] [from TIME] [to TIME] [on DATE] [with NOTE]",
	Aliases: []string{"l", "add"},
	Short:   "Log a finished work session",
	Long: `Log a finished work session. Give any two of start, end and duration and
the third is worked out; a duration on its own ends now.

Duration formats:
  2h, 2 hours, 2hr     - 2 hours
  30m, 30 minutes      - 30 minutes
  1h30m, 1.5h          - 1 hour 30 minutes

Examples:
  daybook log acme design 1h30m
  daybook log acme meetings from 9am to 10:15
  daybook log acme design 2h from 13:00 on yesterday
  daybook log acme support 45m with customer call about invoices
  daybook log --project acme --category design --from "2 hours ago"`,
	RunE: runLog,
}

func init() {
	addEntryFlags(logCmd, &logFlags)

	rootCmd.AddCommand(logCmd)
}

// addEntryFlags registers the flags shared by log and edit.
func addEntryFlags(cmd *cobra.Command, f *parser.LogFlags) {
	cmd.Flags().StringVarP(&f.Project, "project", "p", "", "Project name")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "Category name")
	cmd.Flags().StringVarP(&f.Note, "note", "n", "", "Description of the session")
	cmd.Flags().StringVar(&f.Start, "from", "", "Start time (e.g. 9am, 14:30, \"2 hours ago\")")
	cmd.Flags().StringVar(&f.End, "to", "", "End time")
	cmd.Flags().StringVarP(&f.Duration, "duration", "d", "", "Duration (e.g. 1h30m, 90m, 1.5h)")
	cmd.Flags().StringVar(&f.Date, "date", "", "Day the entry belongs to (e.g. yesterday, 2024-01-15)")

	// Dynamic completion for labels
	_ = cmd.RegisterFlagCompletionFunc("project", completeLabels(model.KindProject))
	_ = cmd.RegisterFlagCompletionFunc("category", completeLabels(model.KindCategory))
}

func runLog(cmd *cobra.Command, args []string) error {
	parsed := parser.ParseLogArgs(args)
	parsed.Merge(logFlags)
	if err := parsed.Process(ctx.Now(), ctx.Location); err != nil {
		return err
	}
	ctx.Debugf("log parsed",
		"project", parsed.Project,
		"category", parsed.Category,
		"start", parsed.Start,
		"duration", parsed.Duration.String(),
		"date", parsed.Date,
	)

	entry, err := ctx.Tracker.CreateEntry(cmd.Context(), parsed.Input())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("created", entry)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintEntrySaved("Logged", entry, colors)
	return nil
}
