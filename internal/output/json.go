package output

import (
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
)

// JSONFormatter provides JSON-specific formatting. Payloads reuse the model
// types so CLI output matches the HTTP API.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// EntryResponse represents a created or updated entry in JSON.
type EntryResponse struct {
	Status string      `json:"status"`
	Entry  model.Entry `json:"entry"`
}

// DeleteResponse represents a deletion in JSON.
type DeleteResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// WeekResponse represents a week of day buckets in JSON.
type WeekResponse struct {
	Start string                      `json:"start"`
	Days  map[string]*model.DayBucket `json:"days"`
}

// LabelsResponse represents one registry in JSON.
type LabelsResponse struct {
	Kind   model.LabelKind   `json:"kind"`
	Names  []string          `json:"names"`
	Colors map[string]string `json:"colors"`
}

// ReindexResponse represents a reindex result in JSON.
type ReindexResponse struct {
	Status  string `json:"status"`
	Indexed int    `json:"indexed"`
}

// TimerResponse represents a started or cancelled timer in JSON. Stopped is
// the entry logged for a timer that was running before.
type TimerResponse struct {
	Status  string             `json:"status"`
	Timer   *model.ActiveTimer `json:"timer"`
	Stopped *model.Entry       `json:"stopped,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintEntry outputs a saved entry with the given status ("created", "updated").
func (j *JSONFormatter) PrintEntry(status string, e model.Entry) error {
	return j.JSON(EntryResponse{Status: status, Entry: e})
}

// PrintDeleted outputs a deletion confirmation.
func (j *JSONFormatter) PrintDeleted(id string) error {
	return j.JSON(DeleteResponse{Status: "deleted", ID: id})
}

// PrintDay outputs a day bucket.
func (j *JSONFormatter) PrintDay(day *model.DayBucket) error {
	return j.JSON(day)
}

// PrintWeek outputs a week keyed by date.
func (j *JSONFormatter) PrintWeek(start string, week map[string]*model.DayBucket) error {
	return j.JSON(WeekResponse{Start: start, Days: week})
}

// PrintStats outputs aggregated stats.
func (j *JSONFormatter) PrintStats(stats *model.Stats) error {
	return j.JSON(stats)
}

// PrintLabels outputs one registry's names and colours.
func (j *JSONFormatter) PrintLabels(kind model.LabelKind, names []string, colors map[string]string) error {
	if names == nil {
		names = []string{}
	}
	if colors == nil {
		colors = map[string]string{}
	}
	return j.JSON(LabelsResponse{Kind: kind, Names: names, Colors: colors})
}

// PrintColors outputs both colour maps.
func (j *JSONFormatter) PrintColors(colors model.ColorSet) error {
	return j.JSON(colors)
}

// PrintReindex outputs a reindex result.
func (j *JSONFormatter) PrintReindex(n int) error {
	return j.JSON(ReindexResponse{Status: "reindexed", Indexed: n})
}

// PrintTimer outputs a timer change with the given status ("started", "cancelled").
func (j *JSONFormatter) PrintTimer(status string, timer *model.ActiveTimer, stopped *model.Entry) error {
	return j.JSON(TimerResponse{Status: status, Timer: timer, Stopped: stopped})
}

// PrintTimerStatus outputs the running timer, if any.
func (j *JSONFormatter) PrintTimerStatus(status model.TimerStatus) error {
	return j.JSON(status)
}

// PrintHealth outputs a storage health report.
func (j *JSONFormatter) PrintHealth(status *storage.HealthStatus) error {
	return j.JSON(status)
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{Status: status, Error: errMsg, Suggestion: suggestion})
}
