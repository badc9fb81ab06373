// Package errors provides consistent error types for Daybook.
// It defines three categories: UserError (bad input the caller can fix), not-found
// conditions reported through sentinels, and SystemError (storage or I/O failures).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrInvalidDate       = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidColor      = errors.New("invalid color format")
	ErrEndBeforeStart    = errors.New("end time must not be before start time")
	ErrNameRequired      = errors.New("name is required")
	ErrRangeTooLarge     = errors.New("date range too large")
	ErrEntryNotFound     = errors.New("timer entry not found")
	ErrNoActiveTimer     = errors.New("no timer is running")
	ErrTimeInFuture      = errors.New("time is in the future")
	ErrDatabaseCorrupted = errors.New("database corrupted")
	ErrDiskFull          = errors.New("disk full")
	ErrPermissionDenied  = errors.New("permission denied")
)

// UserError represents an error that the caller can fix.
// Examples: malformed dates, empty project names, negative durations.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel this error refines (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// InvalidField creates a UserError for field that wraps a sentinel, so callers can
// match it with errors.Is.
func InvalidField(field, value string, cause error) *UserError {
	return &UserError{
		Message: cause.Error(),
		Field:   field,
		Value:   value,
		Cause:   cause,
	}
}

// SystemError represents a storage or I/O failure the caller cannot fix.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// IsNotFound reports whether err means the requested entry, or a running
// timer, does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrNoActiveTimer)
}

// IsInvalidArgument reports whether err was caused by malformed caller input.
func IsInvalidArgument(err error) bool {
	if IsUserError(err) {
		return true
	}
	for _, sentinel := range []error{
		ErrInvalidDate, ErrInvalidTimestamp, ErrInvalidDuration, ErrInvalidColor,
		ErrEndBeforeStart, ErrNameRequired, ErrRangeTooLarge, ErrTimeInFuture,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// AsSystemError extracts a SystemError from an error chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	ok := errors.As(err, &se)
	return se, ok
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
