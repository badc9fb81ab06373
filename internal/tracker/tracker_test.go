package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/palette"
	"github.com/manav03panchal/daybook/internal/storage"
)

func setupService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, Options{}), store
}

func at(date string, hour int) time.Time {
	d, _ := time.Parse(model.DateLayout, date)
	return d.Add(time.Duration(hour) * time.Hour)
}

func input(project, category string, start time.Time, dur int64) model.EntryInput {
	return model.EntryInput{
		Project:   project,
		Category:  category,
		StartTime: start,
		Duration:  dur,
	}
}

// =============================================================================
// Entry Lifecycle Tests
// =============================================================================

func TestCreateEntry(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	start, err := time.Parse(time.RFC3339, "2024-01-15T09:00:00+00:00")
	require.NoError(t, err)
	in := input("Deep Work", "Focus", start, 3600)
	in.Date = "2024-01-15"

	entry, err := svc.CreateEntry(ctx, in)
	require.NoError(t, err)
	_, err = uuid.Parse(entry.ID)
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-15", entry.Date)

	day, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), day.TotalDuration)
	require.Len(t, day.Entries, 1)
	assert.Equal(t, entry.ID, day.Entries[0].ID)
	assert.Equal(t, "Deep Work", day.Entries[0].Project)
	assert.Equal(t, "Focus", day.Entries[0].Category)
	assert.True(t, start.Equal(day.Entries[0].StartTime))
}

func TestCreateEntry_DateResolution(t *testing.T) {
	store, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	est := time.FixedZone("EST", -5*3600)
	svc := New(store, Options{Location: est})
	ctx := context.Background()

	// 03:00 UTC on the 15th is still the 14th in EST.
	e, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 3), 60))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-14", e.Date)

	// An explicit date wins over the start time.
	in := input("p", "c", at("2024-01-15", 3), 60)
	in.Date = "2024-02-01"
	e, err = svc.CreateEntry(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", e.Date)
}

func TestCreateEntry_Validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	start := at("2024-01-15", 9)
	before := start.Add(-time.Hour)
	long := strings.Repeat("x", 129)

	tests := []struct {
		name   string
		mutate func(*model.EntryInput)
		target error
	}{
		{"long project", func(in *model.EntryInput) { in.Project = long }, nil},
		{"negative duration", func(in *model.EntryInput) { in.Duration = -1 }, errors.ErrInvalidDuration},
		{"bad date", func(in *model.EntryInput) { in.Date = "2024-13-01" }, errors.ErrInvalidDate},
		{"short date", func(in *model.EntryInput) { in.Date = "2024-1-5" }, errors.ErrInvalidDate},
		{"end before start", func(in *model.EntryInput) { in.EndTime = &before }, errors.ErrEndBeforeStart},
		{"missing start", func(in *model.EntryInput) { in.StartTime = time.Time{} }, errors.ErrInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input("p", "c", start, 60)
			tt.mutate(&in)
			_, err := svc.CreateEntry(ctx, in)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}

	day, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Empty(t, day.Entries)
}

func TestCreateEntry_EmptyLabels(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, input("  ", "", at("2024-01-15", 9), 600))
	require.NoError(t, err)
	assert.Empty(t, e.Project)
	assert.Empty(t, e.Category)

	stats, err := svc.GetWeekStats(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(600), stats.ProjectBreakdown[model.Uncategorized])
	assert.Equal(t, int64(600), stats.CategoryBreakdown[model.Uncategorized])

	projects, err := svc.ListLabels(ctx, model.KindProject)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCreateEntry_TrimsNames(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	desc := "  notes \r\n"
	in := input("  Deep Work ", "\tFocus", at("2024-01-15", 9), 60)
	in.Description = &desc
	e, err := svc.CreateEntry(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", e.Project)
	assert.Equal(t, "Focus", e.Category)
	assert.Equal(t, "notes", e.DescriptionText())
}

func TestUpdateEntry_MovesAcrossDays(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 9), 600))
	require.NoError(t, err)

	updated, err := svc.UpdateEntry(ctx, e.ID, input("p", "c", at("2024-01-17", 9), 900))
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.ID)
	assert.Equal(t, "2024-01-17", updated.Date)

	oldDay, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, -1, oldDay.IndexOf(e.ID))
	assert.Zero(t, oldDay.TotalDuration)

	newDay, err := svc.GetDay(ctx, "2024-01-17")
	require.NoError(t, err)
	assert.Equal(t, 0, newDay.IndexOf(e.ID))
	assert.Equal(t, int64(900), newDay.TotalDuration)

	got, err := svc.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-17", got.Date)
}

func TestUpdateEntry_SameDayKeepsPosition(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.CreateEntry(ctx, input("a", "c", at("2024-01-15", 9), 60))
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, input("b", "c", at("2024-01-15", 10), 60))
	require.NoError(t, err)

	_, err = svc.UpdateEntry(ctx, first.ID, input("a2", "c", at("2024-01-15", 11), 120))
	require.NoError(t, err)

	day, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, day.Entries, 2)
	assert.Equal(t, first.ID, day.Entries[0].ID)
	assert.Equal(t, "a2", day.Entries[0].Project)
	assert.Equal(t, int64(180), day.TotalDuration)
}

func TestUpdateEntry_FarOutsideAnyWindow(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, input("p", "c", at("2019-06-01", 9), 60))
	require.NoError(t, err)

	_, err = svc.UpdateEntry(ctx, e.ID, input("p", "c", at("2024-06-01", 9), 60))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteEntry(ctx, e.ID))
}

func TestUpdateEntry_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.UpdateEntry(context.Background(), "missing", input("p", "c", at("2024-01-15", 9), 60))
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.CategoryNotFound, errors.Classify(err))
}

func TestUpdateEntry_InvalidInputLeavesEntry(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 9), 60))
	require.NoError(t, err)

	_, err = svc.UpdateEntry(ctx, e.ID, input("p", "c", at("2024-01-16", 9), -5))
	assert.ErrorIs(t, err, errors.ErrInvalidDuration)

	got, err := svc.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got.Date)
	assert.Equal(t, int64(60), got.Duration)
}

func TestDeleteEntry(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 9), 60))
	require.NoError(t, err)
	keep, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 10), 30))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(ctx, e.ID))

	day, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, day.Entries, 1)
	assert.Equal(t, keep.ID, day.Entries[0].ID)
	assert.Equal(t, int64(30), day.TotalDuration)

	week, err := svc.GetWeek(ctx, "2024-01-15")
	require.NoError(t, err)
	for _, b := range week {
		assert.Equal(t, -1, b.IndexOf(e.ID))
	}

	err = svc.DeleteEntry(ctx, e.ID)
	assert.ErrorIs(t, err, errors.ErrEntryNotFound)
}

func TestUnknownIDsAreNotFound(t *testing.T) {
	ids := []string{"missing", "a..b", "..", `x\y`, "a/b", ""}

	drivers := map[string]storage.Options{
		"badger": {InMemory: true},
		"file":   {Driver: storage.DriverFile, Path: t.TempDir()},
		"sqlite": {Driver: storage.DriverSQLite, InMemory: true},
	}
	for name, opts := range drivers {
		t.Run(name, func(t *testing.T) {
			store, err := storage.Open(opts)
			require.NoError(t, err)
			defer store.Close()
			svc := New(store, Options{})
			ctx := context.Background()

			for _, id := range ids {
				err := svc.DeleteEntry(ctx, id)
				assert.ErrorIs(t, err, errors.ErrEntryNotFound, "delete %q", id)

				_, err = svc.UpdateEntry(ctx, id, input("p", "c", at("2024-01-15", 9), 60))
				assert.ErrorIs(t, err, errors.ErrEntryNotFound, "update %q", id)

				_, err = svc.GetEntry(ctx, id)
				assert.ErrorIs(t, err, errors.ErrEntryNotFound, "get %q", id)
			}
		})
	}
}

func TestReindex(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	var ids []string
	for i, date := range []string{"2024-01-15", "2024-01-15", "2024-03-02"} {
		e, err := svc.CreateEntry(ctx, input("p", "c", at(date, 9+i), 60))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	require.NoError(t, store.Update(ctx, func(txn storage.Txn) error {
		return storage.Index(txn).Clear()
	}))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, ids[0]), errors.ErrEntryNotFound)

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, svc.DeleteEntry(ctx, ids[0]))
	_, err = svc.UpdateEntry(ctx, ids[2], input("p", "c", at("2024-03-03", 9), 60))
	require.NoError(t, err)
	assert.True(t, svc.Check(ctx).Healthy)
}

func TestReindex_DuplicateIDReportedByCheck(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 9), 60))
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, func(txn storage.Txn) error {
		copied := e
		copied.Date = "2024-01-16"
		b := model.NewDayBucket("2024-01-16")
		b.Append(copied)
		return storage.Days(txn).Save(b)
	}))

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := svc.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", got.Date)

	status := svc.Check(ctx)
	assert.False(t, status.Healthy)
	assert.Equal(t, []string{e.ID}, status.Duplicates)
}

func TestConcurrentCreates(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateEntry(ctx, input(fmt.Sprintf("p%d", i), "c", at("2024-01-15", 9), int64(i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	day, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Len(t, day.Entries, n)
	assert.Equal(t, int64(n*(n-1)/2), day.TotalDuration)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, n)
}

// =============================================================================
// Aggregation Tests
// =============================================================================

func TestGetDay_InvalidDate(t *testing.T) {
	svc, _ := setupService(t)

	for _, d := range []string{"", "2024-1-15", "15/01/2024", "2024-02-30", "not-a-date"} {
		_, err := svc.GetDay(context.Background(), d)
		assert.ErrorIs(t, err, errors.ErrInvalidDate, d)
	}
}

func TestGetDay_HealsCorruptTotal(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	raw, err := json.Marshal(model.DayBucket{
		Date:          "2024-01-15",
		TotalDuration: 99999,
		Entries: []model.Entry{
			{ID: "a", Project: "p", Category: "c", Duration: 100, Date: "2024-01-15"},
			{ID: "b", Project: "p", Category: "c", Duration: 200, Date: "2024-01-15"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, store.Backend().Update(func(txn storage.Txn) error {
		return txn.Set(model.DayKey("2024-01-15"), raw)
	}))

	day, err := svc.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(300), day.TotalDuration)
	assert.Equal(t, day.Sum(), day.TotalDuration)
}

func TestGetWeek(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-21", 9), 60))
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, input("p", "c", at("2024-01-22", 9), 60))
	require.NoError(t, err)

	week, err := svc.GetWeek(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, week, 7)
	for i := 15; i <= 21; i++ {
		assert.Contains(t, week, fmt.Sprintf("2024-01-%d", i))
	}
	assert.Len(t, week["2024-01-21"].Entries, 1)
	assert.NotContains(t, week, "2024-01-22")
}

func TestGetWeek_CrossesMonthAndYear(t *testing.T) {
	svc, _ := setupService(t)

	week, err := svc.GetWeek(context.Background(), "2024-12-29")
	require.NoError(t, err)
	assert.Contains(t, week, "2024-12-31")
	assert.Contains(t, week, "2025-01-04")
}

func TestGetWeekStats(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, input("Deep Work", "Focus", at("2024-01-15", 9), 3600))
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, input("Deep Work", "Meetings", at("2024-01-16", 9), 1800))
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, input("Admin", "Focus", at("2024-01-21", 9), 600))
	require.NoError(t, err)

	// A hand-written entry without a category.
	require.NoError(t, store.Update(ctx, func(txn storage.Txn) error {
		days := storage.Days(txn)
		b, err := days.Load("2024-01-17")
		if err != nil {
			return err
		}
		b.Append(model.Entry{ID: "raw", Project: "Admin", Duration: 300, Date: "2024-01-17"})
		return days.Save(b)
	}))

	stats, err := svc.GetWeekStats(ctx, "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, int64(6300), stats.TotalSeconds)
	assert.Len(t, stats.DailyBreakdown, 7)
	assert.Equal(t, int64(3600), stats.DailyBreakdown["2024-01-15"])
	assert.Equal(t, int64(5400), stats.ProjectBreakdown["Deep Work"])
	assert.Equal(t, int64(900), stats.ProjectBreakdown["Admin"])
	assert.Equal(t, int64(4200), stats.CategoryBreakdown["Focus"])
	assert.Equal(t, int64(300), stats.CategoryBreakdown[model.Uncategorized])

	sum := func(m map[string]int64) int64 {
		var total int64
		for _, v := range m {
			total += v
		}
		return total
	}
	assert.Equal(t, stats.TotalSeconds, sum(stats.DailyBreakdown))
	assert.Equal(t, stats.TotalSeconds, sum(stats.ProjectBreakdown))
	assert.Equal(t, stats.TotalSeconds, sum(stats.CategoryBreakdown))
}

func TestGetRangeStats(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, input("p", "c", at("2024-02-29", 9), 60))
	require.NoError(t, err)

	stats, err := svc.GetRangeStats(ctx, "2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, stats.DailyBreakdown, 3)
	assert.Equal(t, int64(60), stats.TotalSeconds)

	one, err := svc.GetRangeStats(ctx, "2024-02-29", "2024-02-29")
	require.NoError(t, err)
	assert.Len(t, one.DailyBreakdown, 1)

	_, err = svc.GetRangeStats(ctx, "2024-03-01", "2024-02-28")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = svc.GetRangeStats(ctx, "2023-01-01", "2024-12-31")
	assert.ErrorIs(t, err, errors.ErrRangeTooLarge)

	_, err = svc.GetRangeStats(ctx, "2024-01-01", "bogus")
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}

func TestListEntries(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-16", 9), 60))
	require.NoError(t, err)
	second, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 9), 60))
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, input("p", "c", at("2024-01-20", 9), 60))
	require.NoError(t, err)

	entries, err := svc.ListEntries(ctx, "2024-01-15", "2024-01-16")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	empty, err := svc.ListEntries(ctx, "2023-01-01", "2023-01-02")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.ListEntries(ctx, "2024-01-16", "2024-01-15")
	assert.True(t, errors.IsInvalidArgument(err))
}

// =============================================================================
// Registry Tests
// =============================================================================

func TestAddProject(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	names, err := svc.AddProject(ctx, "Zeta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta"}, names)

	names, err = svc.AddProject(ctx, " Alpha ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, names)

	colors, err := svc.GetAllColors(ctx)
	require.NoError(t, err)
	first := colors.ProjectColors["Zeta"]
	assert.Equal(t, palette.Default[0], first)

	// Adding again changes nothing.
	names, err = svc.AddProject(ctx, "Zeta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, names)
	colors, err = svc.GetAllColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, colors.ProjectColors["Zeta"])

	_, err = svc.AddProject(ctx, "   ")
	assert.ErrorIs(t, err, errors.ErrNameRequired)
}

func TestNamesAreCaseSensitive(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, "focus")
	require.NoError(t, err)
	names, err := svc.AddCategory(ctx, "Focus")
	require.NoError(t, err)
	assert.Equal(t, []string{"Focus", "focus"}, names)
}

func TestSyncLabels(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, "Focus")
	require.NoError(t, err)

	names, err := svc.SyncCategories(ctx, []string{"Meetings", "", "  ", "Focus", "Admin", "Meetings"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "Focus", "Meetings"}, names)

	colors, err := svc.GetAllColors(ctx)
	require.NoError(t, err)
	assert.Len(t, colors.CategoryColors, 3)

	// Colours within one registry are distinct while the palette lasts.
	seen := map[string]bool{}
	for _, c := range colors.CategoryColors {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}

	listed, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, names, listed)
}

func TestColorsStayApartAcrossRegistries(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddProject(ctx, "Deep Work")
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, "Focus")
	require.NoError(t, err)

	colors, err := svc.GetAllColors(ctx)
	require.NoError(t, err)

	project := colors.ProjectColors["Deep Work"]
	category := colors.CategoryColors["Focus"]
	assert.Equal(t, palette.Default[0], project)
	assert.Equal(t, palette.Default.Assign(map[string]string{}, map[string]string{"Deep Work": project}), category)
	assert.NotEqual(t, project, category)
}

func TestGetAllColors_Idempotent(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	// Names registered without colours, as an older settings file might hold them.
	require.NoError(t, store.Update(ctx, func(txn storage.Txn) error {
		st := model.NewSettings()
		st.Register(model.KindProject, "B", "A")
		st.Register(model.KindCategory, "X")
		return storage.Settings(txn).Save(st)
	}))

	first, err := svc.GetAllColors(ctx)
	require.NoError(t, err)
	second, err := svc.GetAllColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first.ProjectColors, 2)
	assert.Len(t, first.CategoryColors, 1)

	// Ascending order: A gets the first pick.
	assert.Equal(t, palette.Default[0], first.ProjectColors["A"])
}

func TestSetColor(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	lc, err := svc.SetProjectColor(ctx, "New", "#abcdef")
	require.NoError(t, err)
	assert.Equal(t, model.LabelColor{Name: "New", Color: "#ABCDEF"}, lc)

	names, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"New"}, names)

	colors, err := svc.GetAllColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", colors.ProjectColors["New"])

	for _, bad := range []string{"red", "#12345", "#GGGGGG", "123456", ""} {
		_, err := svc.SetCategoryColor(ctx, "Focus", bad)
		assert.ErrorIs(t, err, errors.ErrInvalidColor, bad)
	}
	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCreateEntry_RegistersLabels(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, input("Deep Work", "Focus", at("2024-01-15", 9), 60))
	require.NoError(t, err)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Deep Work"}, projects)

	colors, err := svc.GetAllColors(ctx)
	require.NoError(t, err)
	assert.Contains(t, colors.ProjectColors, "Deep Work")
	assert.Contains(t, colors.CategoryColors, "Focus")
}

func TestCancelledContext(t *testing.T) {
	svc, _ := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CreateEntry(ctx, input("p", "c", at("2024-01-15", 9), 60))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTodayAndThisWeek(t *testing.T) {
	store, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	// Wednesday.
	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	svc := New(store, Options{Now: func() time.Time { return now }})
	assert.Equal(t, "2024-01-17", svc.Today())
	assert.Equal(t, "2024-01-15", svc.ThisWeek())
}
