// Daybook - log, browse and summarise working time by calendar day.
package main

import (
	"os"

	"github.com/manav03panchal/daybook/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
