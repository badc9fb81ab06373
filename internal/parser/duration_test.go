package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/daybook/internal/errors"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"2h", 7200},
		{"2hr", 7200},
		{"2 hours", 7200},
		{"2 HoUrS", 7200},
		{"30m", 1800},
		{"30 minutes", 1800},
		{"45s", 45},
		{"45 secs", 45},
		{"1h30m", 5400},
		{"1h 30m", 5400},
		{"1 hour 30 minutes", 5400},
		{"2h30m15s", 9015},
		{"2.5h", 9000},
		{"1.15h", 4140},
		{"1.5m", 90},
		{"90m", 5400},
		{"2", 7200},
		{"1.5", 5400},
		{"1:30", 5400},
		{"0:45:30", 2730},
		{"0h", 0},
		{"100h", 360000},
		{"  2h  ", 7200},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			secs, err := ParseSeconds(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, secs)
		})
	}
}

func TestParseSecondsTruncatesFractions(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"1.9s", 1},
		{"0.5s", 0},
		{"1m 0.99s", 60},
		{"0.0001h", 0},
		{"0.001h", 3},
		{"1.33333m", 79},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			secs, err := ParseSeconds(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, secs)
		})
	}
}

func TestParseSecondsRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"word", "abc"},
		{"unknown unit", "3 days"},
		{"millis", "500ms"},
		{"two bare numbers", "1 30"},
		{"trailing junk", "1h later"},
		{"leading junk", "about 1h"},
		{"bad clock", "1:75"},
		{"too long", "9999999999999999h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeconds(tt.input)
			var tpe *TimeParseError
			require.ErrorAs(t, err, &tpe)
			assert.Equal(t, "duration", tpe.Field)
			assert.ErrorIs(t, err, errors.ErrInvalidDuration)
		})
	}
}

func TestParseSecondsNegative(t *testing.T) {
	for _, input := range []string{"-1h", "-30m", " -0:30"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSeconds(input)
			var tpe *TimeParseError
			require.ErrorAs(t, err, &tpe)
			assert.Equal(t, "duration must not be negative", tpe.Message)
		})
	}
}

func TestIsDurationLike(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"2h", true},
		{"30m", true},
		{"45s", true},
		{"1hr", true},
		{"5min", true},
		{"1h30m", true},
		{"2", true},
		{"1:30", true},

		{"", false},
		{"abc", false},
		{"hours", false},
		{"meeting", false},
		{"3dmodels", false},
		{"-1h", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDurationLike(tt.input), "IsDurationLike(%q)", tt.input)
		})
	}
}
