package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// dayCmd represents the day command.
var dayCmd = &cobra.Command{
	Use:     "day [DATE]",
	Aliases: []string{"d", "today"},
	Short:   "Show the entries of one day",
	Long: `Show every entry logged on one day, in the order they were logged, with the
day's total. DATE defaults to today.

Examples:
  daybook day
  daybook day yesterday
  daybook day 2024-01-15
  daybook day last friday`,
	ValidArgsFunction: completeDays,
	RunE:              runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	date, err := dateArg(strings.Join(args, " "))
	if err != nil {
		return err
	}

	day, err := ctx.Tracker.GetDay(cmd.Context(), date)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDay(day)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintDay(day, colors)
	return nil
}
