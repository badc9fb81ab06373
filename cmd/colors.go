package cmd

import (
	"github.com/spf13/cobra"
)

// colorsCmd represents the colors command.
var colorsCmd = &cobra.Command{
	Use:     "colors",
	Aliases: []string{"colours"},
	Short:   "Show the colours of every project and category",
	Long: `Show the display colour of every registered project and category. Names
without a colour are given one first, so the output is complete.`,
	Args: cobra.NoArgs,
	RunE: runColors,
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}

func runColors(cmd *cobra.Command, args []string) error {
	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintColors(colors)
	}
	ctx.CLIFormatter().PrintColors(colors)
	return nil
}
