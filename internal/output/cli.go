package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleDuration = lipgloss.NewStyle().
			Bold(true)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// swatchGlyph marks a label's registry colour.
const swatchGlyph = "●"

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Duration formats a duration.
func (c *CLIFormatter) Duration(text string) string {
	return c.render(styleDuration, text)
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(styleNote, text)
}

// Swatch renders a coloured dot for hex, or nothing when colour is off.
func (c *CLIFormatter) Swatch(hex string) string {
	if hex == "" || !c.IsColorEnabled() {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(swatchGlyph) + " "
}

// Label formats a project or category name with its colour swatch.
// Empty names show as Uncategorized.
func (c *CLIFormatter) Label(name string, colors map[string]string) string {
	if name == "" {
		return c.render(styleMuted, model.Uncategorized)
	}
	return c.Swatch(colors[name]) + name
}

// PrintEntry prints one entry on a single line.
func (c *CLIFormatter) PrintEntry(e model.Entry, colors model.ColorSet) {
	span := c.Clock(e.StartTime)
	if e.EndTime != nil {
		span += "–" + c.Clock(*e.EndTime)
	}
	line := fmt.Sprintf("  %s  %-8s  %s / %s",
		span,
		c.Duration(FormatSeconds(e.Duration)),
		c.Label(e.Project, colors.ProjectColors),
		c.Label(e.Category, colors.CategoryColors),
	)
	if desc := e.DescriptionText(); desc != "" {
		line += "  " + c.Note(desc)
	}
	c.Println(line)
	c.Println(c.render(styleMuted, "    "+e.ID))
}

// PrintEntrySaved prints the result of a create or update.
func (c *CLIFormatter) PrintEntrySaved(verb string, e model.Entry, colors model.ColorSet) {
	c.Success(fmt.Sprintf("%s %s on %s", verb, FormatSeconds(e.Duration), e.Date))
	c.PrintEntry(e, colors)
}

// PrintTimerStarted prints a started timer, after the entry logged for the
// timer it replaced.
func (c *CLIFormatter) PrintTimerStarted(t *model.ActiveTimer, stopped *model.Entry, colors model.ColorSet) {
	if stopped != nil {
		c.Muted(fmt.Sprintf("Stopped previous timer: %s on %s", FormatSeconds(stopped.Duration), stopped.Date))
	}
	c.Success("Started timer at " + c.Clock(t.StartTime))
	c.printTimer(t, 0, colors)
}

// PrintTimerStatus prints the running timer and its elapsed time.
func (c *CLIFormatter) PrintTimerStatus(status model.TimerStatus, colors model.ColorSet) {
	if !status.Running {
		c.Muted("No timer running.")
		return
	}
	c.Title("Running since " + c.Clock(status.Timer.StartTime))
	c.printTimer(status.Timer, status.Elapsed, colors)
}

// PrintTimerCancelled prints a discarded timer.
func (c *CLIFormatter) PrintTimerCancelled(t *model.ActiveTimer) {
	c.Warning("Discarded timer started at " + c.Clock(t.StartTime))
}

func (c *CLIFormatter) printTimer(t *model.ActiveTimer, elapsed int64, colors model.ColorSet) {
	line := fmt.Sprintf("  %-8s  %s / %s",
		c.Duration(FormatSeconds(elapsed)),
		c.Label(t.Project, colors.ProjectColors),
		c.Label(t.Category, colors.CategoryColors),
	)
	if t.Description != nil && *t.Description != "" {
		line += "  " + c.Note(*t.Description)
	}
	c.Println(line)
}

// PrintEntryDeleted prints a deletion confirmation.
func (c *CLIFormatter) PrintEntryDeleted(id string) {
	c.Success("Deleted entry " + id)
}

// PrintDay prints a day bucket.
func (c *CLIFormatter) PrintDay(day *model.DayBucket, colors model.ColorSet) {
	c.Title(fmt.Sprintf("%s  %s", day.Date, c.Duration(FormatSeconds(day.TotalDuration))))
	if len(day.Entries) == 0 {
		c.Muted("  No entries.")
		return
	}
	for _, e := range day.Entries {
		c.PrintEntry(e, colors)
	}
}

// PrintWeek prints seven day buckets in date order with a running total.
func (c *CLIFormatter) PrintWeek(start string, week map[string]*model.DayBucket, colors model.ColorSet) {
	dates := make([]string, 0, len(week))
	var total int64
	for date, day := range week {
		dates = append(dates, date)
		total += day.TotalDuration
	}
	sort.Strings(dates)

	c.Title(fmt.Sprintf("Week of %s  %s", start, c.Duration(FormatSeconds(total))))
	c.Println()
	for _, date := range dates {
		c.PrintDay(week[date], colors)
		c.Println()
	}
}

// PrintStats prints totals with per-day, per-project and per-category breakdowns.
func (c *CLIFormatter) PrintStats(stats *model.Stats, colors model.ColorSet) {
	c.Title(fmt.Sprintf("%s → %s  %s", stats.From, stats.To, c.Duration(FormatSeconds(stats.TotalSeconds))))

	days := make([]string, 0, len(stats.DailyBreakdown))
	for date := range stats.DailyBreakdown {
		days = append(days, date)
	}
	sort.Strings(days)

	c.Println()
	c.Println(c.render(styleBold, "Daily"))
	for _, date := range days {
		secs := stats.DailyBreakdown[date]
		c.Printf("  %s  %s  %s\n", date, ProgressBar(percent(secs, stats.TotalSeconds), 20), FormatSeconds(secs))
	}

	c.printBreakdown("Projects", stats.ProjectBreakdown, stats.TotalSeconds, colors.ProjectColors)
	c.printBreakdown("Categories", stats.CategoryBreakdown, stats.TotalSeconds, colors.CategoryColors)
}

func (c *CLIFormatter) printBreakdown(title string, breakdown map[string]int64, total int64, colors map[string]string) {
	if len(breakdown) == 0 {
		return
	}
	c.Println()
	c.Println(c.render(styleBold, title))

	rows := make([]TableRow, 0, len(breakdown))
	for _, name := range sortedByValue(breakdown) {
		secs := breakdown[name]
		rows = append(rows, TableRow{Columns: []string{
			c.Swatch(colors[name]) + name,
			FormatSeconds(secs),
			fmt.Sprintf("%5.1f%%", percent(secs, total)),
		}})
	}
	c.PrintTable([]string{"NAME", "TIME", "SHARE"}, rows)
}

// PrintLabels prints a registry's names with their colours.
func (c *CLIFormatter) PrintLabels(kind model.LabelKind, names []string, colors map[string]string) {
	if len(names) == 0 {
		c.Muted(fmt.Sprintf("No %s names registered.", kind))
		return
	}
	for _, name := range names {
		color := colors[name]
		if color == "" {
			color = "-"
		}
		c.Printf("  %s%-24s %s\n", c.Swatch(colors[name]), name, c.render(styleMuted, color))
	}
}

// PrintColors prints both registries' colour maps.
func (c *CLIFormatter) PrintColors(colors model.ColorSet) {
	c.Title("Projects")
	c.PrintLabels(model.KindProject, sortedKeys(colors.ProjectColors), colors.ProjectColors)
	c.Println()
	c.Title("Categories")
	c.PrintLabels(model.KindCategory, sortedKeys(colors.CategoryColors), colors.CategoryColors)
}

// PrintHealth prints a storage health report.
func (c *CLIFormatter) PrintHealth(status *storage.HealthStatus) {
	if status.Healthy {
		c.Success(fmt.Sprintf("Storage healthy (%s)", status.Driver))
	} else {
		c.Error(fmt.Sprintf("Storage unhealthy (%s): %d problem(s)", status.Driver, status.ErrorCount))
	}
	c.Printf("  Days: %d  Entries: %d  Indexed: %d\n", status.Days, status.Entries, status.Indexed)
	for _, e := range status.Errors {
		c.Printf("  - %s\n", e)
	}
	if len(status.Duplicates) > 0 {
		c.Printf("  Duplicate ids: %s\n", strings.Join(status.Duplicates, ", "))
	}
	if d := status.Disk; d != nil {
		c.Printf("  Disk: %d MB free (%.1f%%) at %s\n", d.FreeBytes/(1024*1024), d.FreePercent, d.Path)
		if d.Warning != "" {
			c.Warning(d.Warning)
		}
	}
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one line of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table. Column widths ignore ANSI styling.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// sortedByValue returns keys by descending value, ties by name.
func sortedByValue(m map[string]int64) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return m[keys[i]] > m[keys[j]]
	})
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
