package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrInvalidDate:      "Dates use the YYYY-MM-DD format, e.g. 2024-01-15.",
	ErrInvalidTimestamp: "Try formats like '2024-01-15T09:00:00+01:00', '2 hours ago' or 'yesterday at 9am'.",
	ErrInvalidDuration:  "Try formats like '1h30m', '90m' or '1.5h'.",
	ErrInvalidColor:     "Use hex color format like '#FF5733' or '#00FF00'.",
	ErrEndBeforeStart:   "Check your timestamps - the end time must come after the start time.",
	ErrNameRequired:     "Provide a non-empty project or category name.",
	ErrRangeTooLarge:    "Ask for at most one year of data at a time.",
	ErrEntryNotFound:    "Use 'daybook day <date>' to list entries and their ids.",
	ErrNoActiveTimer:    "Start one with 'daybook start <project>'.",
	ErrTimeInFuture:     "Give a time that has already passed, or leave it out to use now.",

	// System errors
	ErrDiskFull:          "Free up disk space and try again.",
	ErrDatabaseCorrupted: "Restore the data directory from a backup; corrupt day files are kept next to the originals as *.corrupt.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/daybook/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
