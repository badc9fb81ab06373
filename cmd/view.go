package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/tui"
)

// View command flags.
var viewFlagRefresh string

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:     "view [DAY]",
	Aliases: []string{"ui", "dash"},
	Short:   "Browse weeks in an interactive viewer",
	Long: `Open a full-screen week viewer on the week containing DAY (default today).
Move between days with ←/→ or h/l, between weeks with [ and ], jump back to
today with t and quit with q. The view refreshes itself periodically.

Examples:
  daybook view
  daybook view 2024-01-15
  daybook view --refresh 5s`,
	ValidArgsFunction: completeDays,
	RunE:              runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewFlagRefresh, "refresh", "30s", "Refresh interval (e.g. 10s, 1m)")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	day := ""
	if len(args) > 0 {
		var err error
		day, err = dateArg(strings.Join(args, " "))
		if err != nil {
			return err
		}
	}

	refresh, err := refreshInterval(viewFlagRefresh)
	if err != nil {
		return err
	}

	return tui.Run(tui.WeekConfig{
		Source:          ctx.Tracker,
		Context:         cmd.Context(),
		Location:        ctx.Location,
		Start:           day,
		Now:             ctx.Now,
		RefreshInterval: refresh,
	})
}
