package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/parser"
)

// Edit command flags.
var (
	editFlags         parser.LogFlags
	editFlagClearNote bool
)

// editCmd represents the edit command.
var editCmd = &cobra.Command{
	Use:     "edit ID",
	Aliases: []string{"e", "update"},
	Short:   "Change a logged entry",
	Long: `Change the fields of a logged entry. Only the flags you pass are changed.
Times are read relative to the entry's day. A new start keeps the duration,
a new end keeps the start, and a new duration moves the end.

Examples:
  daybook edit 3f1c2a9e-... --category review
  daybook edit 3f1c2a9e-... --from 9:30 --to 11am
  daybook edit 3f1c2a9e-... --duration 45m --note "pairing with Sam"
  daybook edit 3f1c2a9e-... --date yesterday`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	addEntryFlags(editCmd, &editFlags)
	editCmd.Flags().BoolVar(&editFlagClearNote, "clear-note", false, "Remove the description")
	editCmd.MarkFlagsMutuallyExclusive("note", "clear-note")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	current, err := ctx.Tracker.GetEntry(cmd.Context(), id)
	if err != nil {
		return err
	}

	in, err := editFlags.Apply(current, ctx.Now(), ctx.Location)
	if err != nil {
		return err
	}
	if editFlagClearNote {
		in.Description = nil
	}

	entry, err := ctx.Tracker.UpdateEntry(cmd.Context(), id, in)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("updated", entry)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintEntrySaved("Updated", entry, colors)
	return nil
}
