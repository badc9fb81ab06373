package cmd

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/parser"
	"github.com/manav03panchal/daybook/internal/storage"
)

// exportVersion is the version of the export and backup file formats.
const exportVersion = "1"

// Export command flags.
var (
	exportFlagFrom   string
	exportFlagTo     string
	exportFlagPeriod string
	exportFlagCSV    bool
	exportFlagBackup bool
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export entries or back up the whole store",
	Long: `Export the entries of a date range as JSON or CSV, or write a full backup
of the store that "daybook import" can restore into any storage driver.
Without a range the past year is exported.

Examples:
  daybook export
  daybook export --period "last month" --csv -o january.csv
  daybook export --from 2024-01-01 --to 2024-03-31
  daybook export --backup -o daybook-backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagFrom, "from", "", "First day to export")
	exportCmd.Flags().StringVar(&exportFlagTo, "to", "", "Last day to export (default today)")
	exportCmd.Flags().StringVar(&exportFlagPeriod, "period", "", "Named period, e.g. \"this month\"")
	exportCmd.Flags().BoolVar(&exportFlagCSV, "csv", false, "Write CSV instead of JSON")
	exportCmd.Flags().BoolVarP(&exportFlagBackup, "backup", "b", false, "Full store backup")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.MarkFlagsMutuallyExclusive("period", "from")
	exportCmd.MarkFlagsMutuallyExclusive("backup", "csv")
	exportCmd.MarkFlagsMutuallyExclusive("backup", "period")
	exportCmd.MarkFlagsMutuallyExclusive("backup", "from")

	_ = exportCmd.RegisterFlagCompletionFunc("period", completePeriods)

	rootCmd.AddCommand(exportCmd)
}

// EntryExport is the JSON export of a date range.
type EntryExport struct {
	Version    string        `json:"version"`
	ExportedAt string        `json:"exported_at"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	Count      int           `json:"count"`
	Entries    []model.Entry `json:"entries"`
}

// Backup is a raw snapshot of every stored key.
type Backup struct {
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
	Driver     string       `json:"driver"`
	Data       storage.Dump `json:"data"`
}

func runExport(cmd *cobra.Command, args []string) error {
	// Determine output destination
	var writer io.Writer = cmd.OutOrStdout()
	if exportFlagOutput != "" {
		f, err := os.Create(exportFlagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		writer = f
	}

	if exportFlagBackup {
		return runBackup(cmd, writer)
	}

	from, to, err := exportRange()
	if err != nil {
		return err
	}

	entries, err := ctx.Tracker.ListEntries(cmd.Context(), from, to)
	if err != nil {
		return err
	}
	ctx.Debugf("export", "from", from, "to", to, "count", len(entries))

	if exportFlagCSV {
		err = exportCSV(writer, entries)
	} else {
		err = exportJSON(writer, EntryExport{
			Version:    exportVersion,
			ExportedAt: time.Now().Format(time.RFC3339),
			From:       from,
			To:         to,
			Count:      len(entries),
			Entries:    entries,
		})
	}
	if err != nil {
		return err
	}

	// Print summary if writing to file
	if exportFlagOutput != "" && !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Exported " + strconv.Itoa(len(entries)) + " entries to " + exportFlagOutput)
	}
	return nil
}

// exportRange resolves the export flags to an inclusive day range.
func exportRange() (string, string, error) {
	if exportFlagPeriod != "" {
		r, err := parser.ParsePeriod(exportFlagPeriod, ctx.Now())
		if err != nil {
			return "", "", userError(err)
		}
		from, to := r.Days(ctx.Location)
		return from, to, nil
	}

	to, err := dateArg(exportFlagTo)
	if err != nil {
		return "", "", err
	}
	if exportFlagFrom == "" {
		from, err := model.AddDays(to, -365)
		return from, to, err
	}
	from, to, err := parser.ParseDayRange(exportFlagFrom, exportFlagTo, ctx.Now(), ctx.Location)
	return from, to, userError(err)
}

func exportJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func exportCSV(w io.Writer, entries []model.Entry) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write([]string{
		"id", "date", "project", "category", "description", "start", "end", "duration_seconds",
	}); err != nil {
		return err
	}

	// Write rows
	for _, e := range entries {
		endStr := ""
		if e.EndTime != nil {
			endStr = e.EndTime.Format(time.RFC3339)
		}

		if err := writer.Write([]string{
			e.ID,
			e.Date,
			e.Project,
			e.Category,
			e.DescriptionText(),
			e.StartTime.Format(time.RFC3339),
			endStr,
			strconv.FormatInt(e.Duration, 10),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func runBackup(cmd *cobra.Command, w io.Writer) error {
	dump, err := storage.Export(cmd.Context(), ctx.Store)
	if err != nil {
		return err
	}

	backup := Backup{
		Version:    exportVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Driver:     string(ctx.Store.Driver()),
		Data:       dump,
	}
	if err := exportJSON(w, backup); err != nil {
		return err
	}

	if exportFlagOutput != "" && !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Backup created: " + exportFlagOutput)
		ctx.Formatter.Printf("  Keys: %d\n", len(dump))
	}
	return nil
}
