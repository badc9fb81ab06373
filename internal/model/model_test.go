package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/daybook/internal/errors"
)

// =============================================================================
// Date Tests
// =============================================================================

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "2024-01-15", false},
		{"leap_day", "2024-02-29", false},
		{"not_leap", "2023-02-29", true},
		{"month_13", "2024-13-01", true},
		{"short_month", "2024-1-15", true},
		{"timestamp", "2024-01-15T09:00:00Z", true},
		{"slashes", "2024/01/15", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidDate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2024-01-15", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-01-15", "2024-01-16", "2024-01-17", "2024-01-18",
		"2024-01-19", "2024-01-20", "2024-01-21",
	}, dates)

	dates, err = DateRange("2023-12-29", 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", dates[4])
}

func TestAddDays(t *testing.T) {
	d, err := AddDays("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d)

	_, err = AddDays("bad", 1)
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("2024-01-15", "2024-01-21")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = DaysBetween("2024-01-15", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = DaysBetween("2024-01-15", "2024-01-14")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15", FormatDate(ts, nil))

	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "2024-01-16", FormatDate(ts, tokyo))
}

func TestWeekStart(t *testing.T) {
	wed := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15", WeekStart(wed, nil))

	sun := time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15", WeekStart(sun, nil))
}

// =============================================================================
// DayBucket Tests
// =============================================================================

func TestDayBucketMutations(t *testing.T) {
	d := NewDayBucket("2024-01-15")
	assert.Equal(t, "day:2024-01-15", d.GetKey())
	assert.NotNil(t, d.Entries)

	d.Append(Entry{ID: "a", Duration: 60})
	d.Append(Entry{ID: "b", Duration: 120})
	assert.Equal(t, int64(180), d.TotalDuration)

	assert.True(t, d.Replace(Entry{ID: "a", Duration: 30}))
	assert.Equal(t, "a", d.Entries[0].ID)
	assert.Equal(t, int64(150), d.TotalDuration)
	assert.False(t, d.Replace(Entry{ID: "zzz"}))

	removed, ok := d.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, int64(30), removed.Duration)
	assert.Equal(t, int64(120), d.TotalDuration)

	_, ok = d.Remove("a")
	assert.False(t, ok)
}

func TestDayBucketRecompute(t *testing.T) {
	d := &DayBucket{Date: "2024-01-15", TotalDuration: 999, Entries: []Entry{{Duration: 10}, {Duration: 5}}}
	assert.True(t, d.Recompute())
	assert.Equal(t, int64(15), d.TotalDuration)
	assert.False(t, d.Recompute())
}

// =============================================================================
// Entry Tests
// =============================================================================

func TestNewEntryCopiesPointers(t *testing.T) {
	desc := "notes"
	end := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	in := EntryInput{Project: "P", Category: "C", Description: &desc, EndTime: &end, Duration: 3600}

	e := NewEntry("id-1", "2024-01-15", in)
	desc = "changed"
	assert.Equal(t, "notes", e.DescriptionText())
	assert.Equal(t, end, *e.EndTime)
	assert.Equal(t, time.Hour, e.DurationValue())
	assert.Equal(t, "", Entry{}.DescriptionText())
}

func TestEntryInputRoundTrip(t *testing.T) {
	desc := "notes"
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	e := Entry{ID: "id-1", Project: "P", Category: "C", Description: &desc,
		StartTime: start, EndTime: &end, Duration: 3600, Date: "2024-01-14"}

	again := NewEntry(e.ID, e.Date, e.Input())
	assert.Equal(t, e, again)
}

// =============================================================================
// Settings Tests
// =============================================================================

func TestSettingsRegister(t *testing.T) {
	s := NewSettings()

	assert.True(t, s.Register(KindProject, "Zeta", " Alpha ", "", "Zeta"))
	assert.Equal(t, []string{"Alpha", "Zeta"}, s.Projects)
	assert.False(t, s.Register(KindProject, "Alpha"))
	assert.True(t, s.Register(KindProject, "alpha"))
	assert.Equal(t, []string{"Alpha", "Zeta", "alpha"}, s.Projects)
	assert.Empty(t, s.Categories)
}

func TestSettingsNormalize(t *testing.T) {
	s := &Settings{Categories: []string{"b", "a", "b"}}
	s.Normalize()
	assert.Equal(t, []string{"a", "b"}, s.Categories)
	assert.NotNil(t, s.Projects)
	assert.NotNil(t, s.ProjectColors)
	assert.NotNil(t, s.CategoryColors)
}

func TestSettingsUncolored(t *testing.T) {
	s := NewSettings()
	s.Register(KindCategory, "b", "a", "c")
	s.CategoryColors["b"] = "#000000"
	assert.Equal(t, []string{"a", "c"}, s.Uncolored(KindCategory))
	assert.Equal(t, KindProject, KindCategory.Opposite())
	assert.Equal(t, KindCategory, KindProject.Opposite())
}

// =============================================================================
// Stats Tests
// =============================================================================

func TestStatsAddDay(t *testing.T) {
	s := NewStats("2024-01-15", "2024-01-21")
	d := NewDayBucket("2024-01-15")
	d.Append(Entry{Project: "Deep Work", Category: "Focus", Duration: 3600})
	d.Append(Entry{Project: "", Category: "Focus", Duration: 600})
	s.AddDay(d)
	s.AddDay(NewDayBucket("2024-01-16"))

	assert.Equal(t, int64(4200), s.TotalSeconds)
	assert.Equal(t, int64(0), s.DailyBreakdown["2024-01-16"])
	assert.Equal(t, int64(600), s.ProjectBreakdown[Uncategorized])
	assert.Equal(t, int64(4200), s.CategoryBreakdown["Focus"])
}
