package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/daybook/internal/errors"
)

func TestLogArgsProcessStart(t *testing.T) {
	t.Run("defaults_to_now", func(t *testing.T) {
		args := ParseLogArgs([]string{"acme", "design", "with", "kickoff"})
		require.NoError(t, args.ProcessStart(refNow, time.UTC))
		assert.Equal(t, refNow, args.Start)
		assert.Nil(t, args.End)
		in := args.Input()
		assert.Equal(t, "acme", in.Project)
		assert.Equal(t, "design", in.Category)
		assert.Equal(t, int64(0), in.Duration)
		assert.Equal(t, "kickoff", *in.Description)
	})

	t.Run("explicit_start", func(t *testing.T) {
		args := ParseLogArgs([]string{"acme", "from", "2024-01-17T09:15:00Z"})
		require.NoError(t, args.ProcessStart(refNow, time.UTC))
		assert.Equal(t, time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC), args.Start)
	})

	t.Run("date_shifts_now", func(t *testing.T) {
		args := &LogArgs{Project: "acme", RawDate: "2024-01-10"}
		require.NoError(t, args.ProcessStart(refNow, time.UTC))
		assert.Equal(t, "2024-01-10", args.Date)
		assert.Equal(t, time.Date(2024, 1, 10, 14, 25, 0, 0, time.UTC), args.Start)
	})

	t.Run("rejects_duration", func(t *testing.T) {
		args := ParseLogArgs([]string{"acme", "1h"})
		err := args.ProcessStart(refNow, time.UTC)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("rejects_end", func(t *testing.T) {
		args := &LogArgs{Project: "acme", RawEnd: "5pm"}
		assert.Error(t, args.ProcessStart(refNow, time.UTC))
	})

	t.Run("bad_start", func(t *testing.T) {
		args := &LogArgs{Project: "acme", RawStart: "notatime"}
		assert.ErrorIs(t, args.ProcessStart(refNow, time.UTC), errors.ErrInvalidTimestamp)
	})
}

func TestParseStopArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		end  string
		note string
	}{
		{"empty", nil, "", ""},
		{"bare_time", []string{"17:30"}, "17:30", ""},
		{"at_time", []string{"at", "17:30"}, "17:30", ""},
		{"relative", []string{"10", "minutes", "ago"}, "10 minutes ago", ""},
		{"until_with_note", []string{"until", "5pm", "with", "wrapped", "up"}, "5pm", "wrapped up"},
		{"note_only", []string{"with", "note", "'done'"}, "", "done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := ParseStopArgs(tt.args)
			assert.Equal(t, tt.end, args.RawEnd)
			assert.Equal(t, tt.note, args.Note)
			assert.Equal(t, tt.note != "", args.HasNote)
		})
	}
}

func TestStopArgsProcess(t *testing.T) {
	args := ParseStopArgs(nil)
	require.NoError(t, args.Process(refNow, time.UTC))
	assert.True(t, args.End.IsZero())

	args = ParseStopArgs([]string{"at", "2024-01-17T12:00:00Z"})
	args.Merge("", "flagged")
	require.NoError(t, args.Process(refNow, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC), args.End)
	assert.Equal(t, "flagged", args.Note)

	args = ParseStopArgs(nil)
	args.Merge("notatime", "")
	assert.ErrorIs(t, args.Process(refNow, time.UTC), errors.ErrInvalidTimestamp)
}
