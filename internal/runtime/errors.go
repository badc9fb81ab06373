package runtime

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/output"
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitUser     = 1
	ExitNotFound = 2
	ExitSystem   = 3
)

// DiskFullError represents a disk full condition with additional context.
type DiskFullError struct {
	Op      string // The operation that failed (e.g., "write", "sync")
	Path    string // The path involved, if known
	wrapped error  // The underlying error
}

func (e *DiskFullError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk full during %s on %s: %v", e.Op, e.Path, e.wrapped)
	}
	return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
}

func (e *DiskFullError) Unwrap() error {
	return errors.ErrDiskFull
}

// NewDiskFullError creates a new DiskFullError.
func NewDiskFullError(op, path string, err error) *DiskFullError {
	return &DiskFullError{
		Op:      op,
		Path:    path,
		wrapped: err,
	}
}

// IsDiskFullError checks if an error indicates a disk full condition.
// It checks for ENOSPC (Linux/macOS) and common disk full error patterns.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, errors.ErrDiskFull) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"no space left on device",
		"disk full",
		"not enough space",
		"insufficient disk space",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// WrapDiskFullError wraps an error as a DiskFullError if it indicates disk full.
// If the error is not a disk full error, it returns the original error unchanged.
func WrapDiskFullError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	var dfe *DiskFullError
	if errors.As(err, &dfe) {
		return err
	}
	if IsDiskFullError(err) {
		return NewDiskFullError(op, path, err)
	}
	return err
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.Classify(err) {
	case errors.CategoryUser:
		return ExitUser
	case errors.CategoryNotFound:
		return ExitNotFound
	case errors.CategorySystem:
		return ExitSystem
	default:
		return ExitUser
	}
}

// Report prints err in the formatter's output format and returns the exit code.
// System errors are also logged.
func Report(f *output.Formatter, op string, err error) int {
	if err == nil {
		return ExitOK
	}
	err = WrapDiskFullError(err, op, "")

	category := errors.Classify(err)
	if category == errors.CategorySystem {
		logging.Error("command failed", logging.KeyOperation, op, logging.KeyError, err)
	}

	if f.IsJSON() {
		_ = output.NewJSONFormatter(f).PrintError(category.String(), err.Error(), errors.GetSuggestion(err))
	} else {
		output.NewCLIFormatter(f).Error(errors.FormatByCategory(err))
	}
	return ExitCode(err)
}
