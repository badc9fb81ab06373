package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/output"
)

// DayStripComponent shows the seven days of a week with their totals.
type DayStripComponent struct {
	Days     []*model.DayBucket
	Selected int
	Today    string
	Width    int
}

// NewDayStripComponent creates a day strip. days must be in date order.
func NewDayStripComponent(days []*model.DayBucket, selected int, today string, width int) *DayStripComponent {
	return &DayStripComponent{
		Days:     days,
		Selected: selected,
		Today:    today,
		Width:    width,
	}
}

// View renders the day strip.
func (dc *DayStripComponent) View() string {
	var longest int64
	for _, d := range dc.Days {
		if d.TotalDuration > longest {
			longest = d.TotalDuration
		}
	}

	barWidth := dc.Width - 40
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, d := range dc.Days {
		label := d.Date
		if t, err := model.ParseDate(d.Date); err == nil {
			label = t.Format("Mon 02 Jan")
		}

		marker := "  "
		if i == dc.Selected {
			marker = "▸ "
		}
		if d.Date == dc.Today {
			label += " •"
		}

		var pct float64
		if longest > 0 {
			pct = float64(d.TotalDuration) * 100 / float64(longest)
		}

		head := fmt.Sprintf("%s%-13s", marker, label)
		if i == dc.Selected {
			head = StyleSelected.Render(head)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			head, ProgressBar(pct, barWidth),
			StyleDuration.Render(output.FormatSeconds(d.TotalDuration))))
	}

	return StyleWeekBox.Width(dc.Width - 4).Render(strings.Join(lines, "\n"))
}

// EntriesComponent lists one day's entries.
type EntriesComponent struct {
	Day      *model.DayBucket
	Colors   model.ColorSet
	Location *time.Location
	Width    int
}

// NewEntriesComponent creates an entries component.
func NewEntriesComponent(day *model.DayBucket, colors model.ColorSet, loc *time.Location, width int) *EntriesComponent {
	return &EntriesComponent{
		Day:      day,
		Colors:   colors,
		Location: loc,
		Width:    width,
	}
}

// View renders the entries component.
func (ec *EntriesComponent) View() string {
	var content strings.Builder

	title := "No day selected"
	if ec.Day != nil {
		title = fmt.Sprintf("%s  %s", ec.Day.Date, output.FormatSeconds(ec.Day.TotalDuration))
	}
	content.WriteString(StyleTitle.Render(title))
	content.WriteString("\n")

	if ec.Day == nil || len(ec.Day.Entries) == 0 {
		content.WriteString(StyleMuted.Render("No entries"))
	} else {
		for i, e := range ec.Day.Entries {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(ec.renderEntry(e))
		}
	}

	return StyleEntriesBox.Width(ec.Width - 4).Render(content.String())
}

func (ec *EntriesComponent) renderEntry(e model.Entry) string {
	var sb strings.Builder

	sb.WriteString(FormatLabel(e.Project, ec.Colors.ProjectColors))
	sb.WriteString(" / ")
	sb.WriteString(FormatLabel(e.Category, ec.Colors.CategoryColors))
	sb.WriteString("  ")
	sb.WriteString(StyleDuration.Render(output.FormatSeconds(e.Duration)))

	sb.WriteString("\n")
	span := output.FormatTimeOnly(e.StartTime, ec.Location)
	if e.EndTime != nil {
		span += " - " + output.FormatTimeOnly(*e.EndTime, ec.Location)
	}
	sb.WriteString(StyleSubtitle.Render("  " + span))

	if desc := e.DescriptionText(); desc != "" {
		sb.WriteString("  ")
		sb.WriteString(StyleNote.Render(fmt.Sprintf("%q", desc)))
	}

	return sb.String()
}

// BreakdownComponent shows the week's time per project.
type BreakdownComponent struct {
	Stats  *model.Stats
	Colors model.ColorSet
	Width  int
	Limit  int
}

// NewBreakdownComponent creates a breakdown component.
func NewBreakdownComponent(stats *model.Stats, colors model.ColorSet, width, limit int) *BreakdownComponent {
	return &BreakdownComponent{
		Stats:  stats,
		Colors: colors,
		Width:  width,
		Limit:  limit,
	}
}

// View renders the breakdown component.
func (bc *BreakdownComponent) View() string {
	var content strings.Builder

	total := int64(0)
	if bc.Stats != nil {
		total = bc.Stats.TotalSeconds
	}
	content.WriteString(StyleTitle.Render("Projects  " + output.FormatSeconds(total)))
	content.WriteString("\n")

	if bc.Stats == nil || len(bc.Stats.ProjectBreakdown) == 0 {
		content.WriteString(StyleMuted.Render("Nothing logged this week"))
		return StyleBreakdownBox.Width(bc.Width - 4).Render(content.String())
	}

	names := make([]string, 0, len(bc.Stats.ProjectBreakdown))
	for name := range bc.Stats.ProjectBreakdown {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := bc.Stats.ProjectBreakdown[names[i]], bc.Stats.ProjectBreakdown[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	if bc.Limit > 0 && len(names) > bc.Limit {
		names = names[:bc.Limit]
	}

	barWidth := bc.Width - 44
	if barWidth < 10 {
		barWidth = 10
	}

	for i, name := range names {
		if i > 0 {
			content.WriteString("\n")
		}
		secs := bc.Stats.ProjectBreakdown[name]
		var pct float64
		if total > 0 {
			pct = float64(secs) * 100 / float64(total)
		}
		label := name
		if name != model.Uncategorized {
			label = FormatLabel(name, bc.Colors.ProjectColors)
		}
		content.WriteString(fmt.Sprintf("%s%s %s %5.1f%%",
			label, strings.Repeat(" ", max(1, 20-lipgloss.Width(label))),
			ProgressBar(pct, barWidth), pct))
	}

	return StyleBreakdownBox.Width(bc.Width - 4).Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"←/→", "day"},
		{"[/]", "week"},
		{"t", "today"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
