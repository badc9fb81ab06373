package cmd

import (
	"github.com/spf13/cobra"
)

// rmCmd represents the rm command.
var rmCmd = &cobra.Command{
	Use:     "rm ID...",
	Aliases: []string{"delete", "del"},
	Short:   "Delete logged entries",
	Long: `Delete one or more logged entries by id. Ids are shown under each entry
by "daybook day" and "daybook week".

Examples:
  daybook rm 3f1c2a9e-...
  daybook rm 3f1c2a9e-... 8b0d41f7-...`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	for _, id := range args {
		if err := ctx.Tracker.DeleteEntry(cmd.Context(), id); err != nil {
			return err
		}

		if ctx.IsJSON() {
			if err := ctx.JSONFormatter().PrintDeleted(id); err != nil {
				return err
			}
			continue
		}
		ctx.CLIFormatter().PrintEntryDeleted(id)
	}
	return nil
}
