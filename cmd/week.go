package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// weekCmd represents the week command.
var weekCmd = &cobra.Command{
	Use:     "week [DAY]",
	Aliases: []string{"w"},
	Short:   "Show the entries of one week",
	Long: `Show the seven days of the Monday-based week containing DAY, one section per
day. DAY defaults to today.

Examples:
  daybook week
  daybook week 2024-01-17
  daybook week "last monday"`,
	ValidArgsFunction: completeDays,
	RunE:              runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(cmd *cobra.Command, args []string) error {
	start, err := weekArg(strings.Join(args, " "))
	if err != nil {
		return err
	}

	week, err := ctx.Tracker.GetWeek(cmd.Context(), start)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintWeek(start, week)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintWeek(start, week, colors)
	return nil
}
