package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/parser"
)

// Stats command flags.
var (
	statsFlagFrom   string
	statsFlagTo     string
	statsFlagPeriod string
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats [DAY | PERIOD]",
	Aliases: []string{"stat", "st"},
	Short:   "Show time totals",
	Long: `Show total time with per-day, per-project and per-category breakdowns.
Without arguments this covers the current week. A day selects the week
containing it; a period such as "this month" or "last quarter" selects that
period; --from and --to select an explicit inclusive range.

Examples:
  daybook stats
  daybook stats 2024-01-10
  daybook stats this month
  daybook stats --period "last week"
  daybook stats --from 2024-01-01 --to 2024-03-31`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFlagFrom, "from", "", "First day of the range")
	statsCmd.Flags().StringVar(&statsFlagTo, "to", "", "Last day of the range (default today)")
	statsCmd.Flags().StringVar(&statsFlagPeriod, "period", "",
		"Named period: today, yesterday, this/last week, month, quarter, year")
	statsCmd.MarkFlagsMutuallyExclusive("period", "from")
	statsCmd.MarkFlagsMutuallyExclusive("period", "to")

	statsCmd.ValidArgsFunction = completePeriods
	_ = statsCmd.RegisterFlagCompletionFunc("period", completePeriods)

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	arg := strings.Join(args, " ")
	if arg != "" && (statsFlagPeriod != "" || statsFlagFrom != "" || statsFlagTo != "") {
		return errors.NewUserError("give either an argument or range flags, not both",
			"Use 'daybook stats this month' or 'daybook stats --period \"this month\"'.")
	}

	var (
		stats *model.Stats
		err   error
	)
	switch {
	case statsFlagPeriod != "" || parser.IsPeriod(arg):
		period := statsFlagPeriod
		if period == "" {
			period = arg
		}
		r, perr := parser.ParsePeriod(period, ctx.Now())
		if perr != nil {
			return userError(perr)
		}
		from, to := r.Days(ctx.Location)
		ctx.Debugf("stats period", "period", period, "from", from, "to", to)
		stats, err = ctx.Tracker.GetRangeStats(cmd.Context(), from, to)

	case statsFlagFrom != "" || statsFlagTo != "":
		var from, to string
		from, to, err = statsRange()
		if err != nil {
			return err
		}
		stats, err = ctx.Tracker.GetRangeStats(cmd.Context(), from, to)

	default:
		var start string
		start, err = weekArg(arg)
		if err != nil {
			return err
		}
		stats, err = ctx.Tracker.GetWeekStats(cmd.Context(), start)
	}
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(stats)
	}

	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintStats(stats, colors)
	return nil
}

// statsRange resolves --from and --to. A missing end means today.
func statsRange() (string, string, error) {
	if statsFlagFrom == "" {
		return "", "", errors.NewUserErrorWithField("from", "",
			"--to needs a --from", "Add --from with the first day of the range.")
	}
	from, to, err := parser.ParseDayRange(statsFlagFrom, statsFlagTo, ctx.Now(), ctx.Location)
	return from, to, userError(err)
}
