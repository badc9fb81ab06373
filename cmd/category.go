package cmd

import (
	"github.com/manav03panchal/daybook/internal/model"
)

// categoryCmd represents the category command.
var categoryCmd = newLabelCmd(model.KindCategory, labelCmdText{
	use:     "category",
	aliases: []string{"categories", "cat", "c"},
	short:   "Manage the category registry",
	examples: `  daybook category
  daybook category add Meetings
  daybook category sync Focus Meetings Review
  daybook category color Meetings "#F59E0B"`,
})

func init() {
	rootCmd.AddCommand(categoryCmd)
}
