package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/model"
)

type completionFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeLabels returns a completion function for registered names of kind.
func completeLabels(kind model.LabelKind) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return labelsWithPrefix(cmd, kind, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeLabelThenColor completes a name first and then a palette colour.
func completeLabelThenColor(kind model.LabelKind) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return labelsWithPrefix(cmd, kind, toComplete), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// labelsWithPrefix returns the names of kind starting with prefix.
func labelsWithPrefix(cmd *cobra.Command, kind model.LabelKind, prefix string) []string {
	if ctx == nil || ctx.Tracker == nil {
		return nil
	}

	names, err := ctx.Tracker.ListLabels(cmd.Context(), kind)
	if err != nil {
		return nil
	}

	var completions []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			completions = append(completions, name)
		}
	}
	return completions
}

// completeDays suggests day words for commands taking a DATE.
func completeDays(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix([]string{
		"today\tthis day",
		"yesterday\tthe day before",
		"tomorrow\tthe day after",
	}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completePeriods suggests named periods for stats and export.
func completePeriods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{
		"today", "yesterday",
		"this week", "last week",
		"this month", "last month",
		"this quarter", "last quarter",
		"this year", "last year",
	}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// fixedCompletions completes a flag from a fixed set of values.
func fixedCompletions(values ...string) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// noCompletions turns off file completion for free-form arguments.
func noCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// filterPrefix keeps candidates whose value (before any tab description)
// starts with prefix.
func filterPrefix(candidates []string, prefix string) []string {
	var filtered []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.Split(c, "\t")[0], prefix) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
