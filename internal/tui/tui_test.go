package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/daybook/internal/model"
)

// 2024-01-17 is a Wednesday.
var fixedNow = time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)

type fakeSource struct {
	weeks  map[string]map[string]*model.DayBucket
	colors model.ColorSet
	err    error
	calls  []string
}

func (f *fakeSource) GetWeek(_ context.Context, start string) (map[string]*model.DayBucket, error) {
	f.calls = append(f.calls, start)
	if f.err != nil {
		return nil, f.err
	}
	if w, ok := f.weeks[start]; ok {
		return w, nil
	}
	return emptyWeek(start), nil
}

func (f *fakeSource) GetWeekStats(_ context.Context, start string) (*model.Stats, error) {
	to, _ := model.AddDays(start, 6)
	stats := model.NewStats(start, to)
	week, _ := f.GetWeek(context.Background(), start)
	for _, d := range week {
		stats.AddDay(d)
	}
	return stats, nil
}

func (f *fakeSource) GetAllColors(context.Context) (model.ColorSet, error) {
	return f.colors, nil
}

func emptyWeek(start string) map[string]*model.DayBucket {
	dates, _ := model.DateRange(start, 7)
	week := make(map[string]*model.DayBucket, 7)
	for _, d := range dates {
		week[d] = model.NewDayBucket(d)
	}
	return week
}

func sampleSource() *fakeSource {
	week := emptyWeek("2024-01-15")
	start := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	desc := "standup"
	week["2024-01-17"].Append(model.Entry{
		ID: "e1", Project: "Acme", Category: "Meetings", Description: &desc,
		StartTime: start, EndTime: &end, Duration: 3600, Date: "2024-01-17",
	})
	return &fakeSource{
		weeks: map[string]map[string]*model.DayBucket{"2024-01-15": week},
		colors: model.ColorSet{
			ProjectColors:  map[string]string{"Acme": "#FF0000"},
			CategoryColors: map[string]string{"Meetings": "#00FF00"},
		},
	}
}

func newTestModel(src WeekSource, start string) *WeekModel {
	return NewWeekModel(WeekConfig{
		Source: src,
		Start:  start,
		Now:    func() time.Time { return fixedNow },
	})
}

// load runs the model's load command synchronously and feeds the result back.
func load(t *testing.T, m *WeekModel) {
	t.Helper()
	msg := m.loadCmd(m.start)()
	m.Update(msg)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// WeekModel Tests
// =============================================================================

func TestNewWeekModel(t *testing.T) {
	t.Run("defaults_to_this_week_and_today", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		assert.Equal(t, "2024-01-15", m.Start())
		assert.Equal(t, "2024-01-17", m.Selected())
	})

	t.Run("opens_on_given_day", func(t *testing.T) {
		m := newTestModel(sampleSource(), "2023-12-31")
		assert.Equal(t, "2023-12-25", m.Start())
		assert.Equal(t, "2023-12-31", m.Selected())
	})

	t.Run("ignores_bad_start", func(t *testing.T) {
		m := newTestModel(sampleSource(), "not-a-date")
		assert.Equal(t, "2024-01-15", m.Start())
	})
}

func TestWeekModelLoad(t *testing.T) {
	m := newTestModel(sampleSource(), "")
	load(t, m)

	require.Len(t, m.days, 7)
	assert.Equal(t, "2024-01-15", m.days[0].Date)
	assert.Equal(t, "2024-01-21", m.days[6].Date)
	assert.Equal(t, int64(3600), m.stats.TotalSeconds)
	assert.False(t, m.loading)
	assert.Nil(t, m.err)
}

func TestWeekModelDropsStaleWeek(t *testing.T) {
	m := newTestModel(sampleSource(), "")
	stale := m.loadCmd("2024-01-08")()
	m.Update(stale)
	assert.Nil(t, m.days)
}

func TestWeekModelError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk gone")}
	m := newTestModel(src, "")
	load(t, m)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "disk gone")
}

func TestWeekModelNavigation(t *testing.T) {
	t.Run("day_keys_move_selection", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		m.Update(key("right"))
		assert.Equal(t, "2024-01-18", m.Selected())
		m.Update(key("h"))
		m.Update(key("h"))
		assert.Equal(t, "2024-01-16", m.Selected())
	})

	t.Run("left_from_monday_wraps_to_previous_sunday", func(t *testing.T) {
		m := newTestModel(sampleSource(), "2024-01-15")
		_, cmd := m.Update(key("left"))
		assert.NotNil(t, cmd)
		assert.Equal(t, "2024-01-08", m.Start())
		assert.Equal(t, "2024-01-14", m.Selected())
	})

	t.Run("right_from_sunday_wraps_to_next_monday", func(t *testing.T) {
		m := newTestModel(sampleSource(), "2024-01-21")
		m.Update(key("l"))
		assert.Equal(t, "2024-01-22", m.Start())
		assert.Equal(t, "2024-01-22", m.Selected())
	})

	t.Run("week_keys_keep_weekday", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		m.Update(key("]"))
		assert.Equal(t, "2024-01-22", m.Start())
		assert.Equal(t, "2024-01-24", m.Selected())
		m.Update(key("["))
		m.Update(key("p"))
		assert.Equal(t, "2024-01-08", m.Start())
		assert.True(t, m.loading)
	})

	t.Run("today_key_returns_home", func(t *testing.T) {
		m := newTestModel(sampleSource(), "2023-06-01")
		m.Update(key("t"))
		assert.Equal(t, "2024-01-15", m.Start())
		assert.Equal(t, "2024-01-17", m.Selected())
	})

	t.Run("quit", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		_, cmd := m.Update(key("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestWeekModelRefreshMessage(t *testing.T) {
	m := newTestModel(sampleSource(), "")
	_, cmd := m.Update(key("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Refreshed", m.message)

	m.now = func() time.Time { return fixedNow.Add(2 * time.Second) }
	m.Update(tickMsg(fixedNow))
	assert.Empty(t, m.message)
}

func TestWeekModelView(t *testing.T) {
	t.Run("before_resize", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		assert.Equal(t, "Loading...", m.View())
	})

	t.Run("loaded", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		load(t, m)
		m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

		view := m.View()
		assert.Contains(t, view, "week of 2024-01-15")
		assert.Contains(t, view, "Wed 17 Jan")
		assert.Contains(t, view, "Acme")
		assert.Contains(t, view, "Meetings")
		assert.Contains(t, view, "standup")
		assert.Contains(t, view, "09:00 - 10:00")
		assert.Contains(t, view, "quit")
	})

	t.Run("loading_new_week", func(t *testing.T) {
		m := newTestModel(sampleSource(), "")
		m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		m.Update(key("]"))
		assert.Contains(t, m.View(), "Loading week...")
	})
}

// =============================================================================
// Component Tests
// =============================================================================

func TestDayStripComponent(t *testing.T) {
	days := orderedDays(sampleSource().weeks["2024-01-15"])
	view := NewDayStripComponent(days, 2, "2024-01-17", 100).View()

	assert.Contains(t, view, "▸ Wed 17 Jan •")
	assert.Contains(t, view, "Mon 15 Jan")
	assert.Contains(t, view, "1h")
}

func TestEntriesComponent(t *testing.T) {
	t.Run("nil_day", func(t *testing.T) {
		view := NewEntriesComponent(nil, model.ColorSet{}, time.UTC, 80).View()
		assert.Contains(t, view, "No entries")
	})

	t.Run("uses_location", func(t *testing.T) {
		day := sampleSource().weeks["2024-01-15"]["2024-01-17"]
		est := time.FixedZone("EST", -5*3600)
		view := NewEntriesComponent(day, model.ColorSet{}, est, 80).View()
		assert.Contains(t, view, "04:00 - 05:00")
	})
}

func TestBreakdownComponent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		view := NewBreakdownComponent(nil, model.ColorSet{}, 80, 5).View()
		assert.Contains(t, view, "Nothing logged this week")
	})

	t.Run("limit", func(t *testing.T) {
		stats := model.NewStats("2024-01-15", "2024-01-21")
		stats.TotalSeconds = 600
		stats.ProjectBreakdown = map[string]int64{"a": 300, "b": 200, "c": 100}
		view := NewBreakdownComponent(stats, model.ColorSet{}, 100, 2).View()
		assert.Contains(t, view, "a")
		assert.Contains(t, view, "50.0%")
		assert.NotContains(t, view, "16.7%")
	})
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
	}{
		{"zero", 0},
		{"half", 50},
		{"full", 100},
		{"over", 150},
		{"negative", -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 10, lipgloss.Width(ProgressBar(tt.percentage, 10)))
		})
	}
}

func TestFormatLabel(t *testing.T) {
	assert.Contains(t, FormatLabel("Acme", map[string]string{"Acme": "#FF0000"}), "Acme")
	assert.Contains(t, FormatLabel("Beta", nil), "Beta")
	assert.Contains(t, FormatLabel("", nil), model.Uncategorized)
}

func TestHelpBar(t *testing.T) {
	help := HelpBar()
	for _, word := range []string{"day", "week", "today", "refresh", "quit"} {
		assert.Contains(t, help, word)
	}
}
