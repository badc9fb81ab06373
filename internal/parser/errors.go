package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/daybook/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	Cause      error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *TimeParseError) Unwrap() error {
	return e.Cause
}

// NewTimeParseError creates a new time parse error with examples.
func NewTimeParseError(field, input, message string, examples ...string) *TimeParseError {
	return &TimeParseError{
		Input:    input,
		Field:    field,
		Message:  message,
		Examples: examples,
	}
}

// DurationExamples provides example duration formats.
var DurationExamples = []string{
	"1h30m",
	"90m",
	"2 hours",
	"30 minutes",
	"1h 30m",
	"2.5h",
}

// TimestampExamples provides example timestamp formats.
var TimestampExamples = []string{
	"9am",
	"5:30pm",
	"14:30",
	"yesterday at 3pm",
	"2 hours ago",
	"now",
}

// DateExamples provides example day formats.
var DateExamples = []string{
	"2024-01-15",
	"today",
	"yesterday",
	"last friday",
	"3 days ago",
}

// DateRangeExamples provides example date range formats.
var DateRangeExamples = []string{
	"today",
	"yesterday",
	"this week",
	"last week",
	"this month",
	"last month",
}

// NewDurationError creates a duration parse error with standard examples.
func NewDurationError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "duration",
		Message:    "could not parse duration",
		Examples:   DurationExamples,
		Suggestion: "Durations can be specified as hours (h), minutes (m), or seconds (s).",
		Cause:      errors.ErrInvalidDuration,
	}
}

// NewTimestampError creates a timestamp parse error with standard examples.
func NewTimestampError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "timestamp",
		Message:    "could not parse time",
		Examples:   TimestampExamples,
		Suggestion: "Try using natural language like '9am', '2 hours ago', or '14:30'.",
		Cause:      errors.ErrInvalidTimestamp,
	}
}

// NewDateError creates a day parse error with standard examples.
func NewDateError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or a phrase like 'yesterday'.",
		Cause:      errors.ErrInvalidDate,
	}
}

// NewDateRangeError creates a date range parse error with standard examples.
func NewDateRangeError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "date range",
		Message:    "could not parse date range",
		Examples:   DateRangeExamples,
		Suggestion: "Use period names like 'today', 'this week', or 'last month'.",
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = e.Cause
	return ue
}
