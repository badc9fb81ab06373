// Package validate provides input validation helpers for Daybook.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/daybook/internal/errors"
)

const (
	// MaxLabelLength is the maximum length for a project or category name.
	MaxLabelLength = 128
	// MaxDescriptionLength is the maximum length for an entry description.
	MaxDescriptionLength = 4096
)

// LabelName validates a project or category name. field names the input in the error.
func LabelName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return &errors.UserError{
			Message:    fmt.Sprintf("%s is required", field),
			Field:      field,
			Suggestion: fmt.Sprintf("Provide a non-empty %s name", field),
			Cause:      errors.ErrNameRequired,
		}
	}
	if utf8.RuneCountInString(name) > MaxLabelLength {
		return errors.NewUserErrorWithField(field, name,
			fmt.Sprintf("%s name too long", field),
			fmt.Sprintf("Names must be %d characters or fewer", MaxLabelLength))
	}
	return nil
}

// Description validates an entry description.
func Description(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return errors.NewUserError(
			"Description too long",
			fmt.Sprintf("Descriptions must be %d characters or fewer", MaxDescriptionLength))
	}
	return nil
}

// Duration validates a duration in whole seconds.
func Duration(seconds int64) error {
	if seconds < 0 {
		return errors.InvalidField("duration", fmt.Sprint(seconds), errors.ErrInvalidDuration)
	}
	return nil
}

// HexColor validates a #RRGGBB colour code.
func HexColor(color string) error {
	if len(color) != 7 || !strings.HasPrefix(color, "#") {
		return errors.InvalidField("color", color, errors.ErrInvalidColor)
	}
	for _, c := range color[1:] {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return errors.InvalidField("color", color, errors.ErrInvalidColor)
		}
	}
	return nil
}

// KeySegment validates a storage key segment that becomes part of a file name.
func KeySegment(segment string) error {
	if segment == "" || IsPathTraversal(segment) || strings.ContainsAny(segment, `/\`+"\x00") {
		return errors.NewUserErrorWithField("key", segment,
			"Invalid storage key",
			"Keys may not contain path separators or '..'")
	}
	return nil
}
