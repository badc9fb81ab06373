package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/model"
)

// projectCmd represents the project command.
var projectCmd = newLabelCmd(model.KindProject, labelCmdText{
	use:     "project",
	aliases: []string{"projects", "proj", "p"},
	short:   "Manage the project registry",
	examples: `  daybook project
  daybook project add "Deep Work"
  daybook project sync acme beta "Deep Work"
  daybook project color acme "#3B82F6"`,
})

func init() {
	rootCmd.AddCommand(projectCmd)
}

type labelCmdText struct {
	use      string
	aliases  []string
	short    string
	examples string
}

// newLabelCmd builds the list/add/sync/color command tree for one registry.
func newLabelCmd(kind model.LabelKind, text labelCmdText) *cobra.Command {
	cmd := &cobra.Command{
		Use:     text.use,
		Aliases: text.aliases,
		Short:   text.short,
		Long: fmt.Sprintf(`List the registered %[1]s names with their colours, or change the registry.
Names are registered automatically when an entry uses them, and each new name
gets a colour that stands apart from the colours already in use.

Examples:
%[2]s`, kind, text.examples),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := ctx.Tracker.ListLabels(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return printLabels(cmd, kind, names)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: fmt.Sprintf("Register a %s name", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := ctx.Tracker.AddLabel(cmd.Context(), kind, args[0])
			if err != nil {
				return err
			}
			return printLabels(cmd, kind, names)
		},
	}

	syncCmd := &cobra.Command{
		Use:   "sync NAME...",
		Short: fmt.Sprintf("Replace the %s list, keeping known colours", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := ctx.Tracker.SyncLabels(cmd.Context(), kind, args)
			if err != nil {
				return err
			}
			return printLabels(cmd, kind, names)
		},
	}

	colorCmd := &cobra.Command{
		Use:     "color NAME HEX",
		Aliases: []string{"colour"},
		Short:   fmt.Sprintf("Set the display colour of a %s", kind),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := ctx.Tracker.SetColor(cmd.Context(), kind, args[0], args[1])
			if err != nil {
				return err
			}
			if ctx.IsJSON() {
				return ctx.Formatter.JSON(lc)
			}
			cli := ctx.CLIFormatter()
			cli.Success(fmt.Sprintf("%s %s is now %s%s", kind, lc.Name, cli.Swatch(lc.Color), lc.Color))
			return nil
		},
	}

	addCmd.ValidArgsFunction = noCompletions
	syncCmd.ValidArgsFunction = completeLabels(kind)
	colorCmd.ValidArgsFunction = completeLabelThenColor(kind)

	cmd.AddCommand(addCmd, syncCmd, colorCmd)
	return cmd
}

func printLabels(cmd *cobra.Command, kind model.LabelKind, names []string) error {
	colors, err := ctx.Tracker.GetAllColors(cmd.Context())
	if err != nil {
		return err
	}
	byName := colors.ProjectColors
	if kind == model.KindCategory {
		byName = colors.CategoryColors
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintLabels(kind, names, byName)
	}
	ctx.CLIFormatter().PrintLabels(kind, names, byName)
	return nil
}
