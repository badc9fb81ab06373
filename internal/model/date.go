package model

import (
	"time"

	"github.com/manav03panchal/daybook/internal/errors"
)

// DateLayout is the calendar day key format.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD day key. The result is midnight UTC so calendar
// stepping never crosses a DST boundary.
func ParseDate(date string) (time.Time, error) {
	if len(date) != len(DateLayout) {
		return time.Time{}, errors.InvalidField("date", date, errors.ErrInvalidDate)
	}
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, errors.InvalidField("date", date, errors.ErrInvalidDate)
	}
	return t, nil
}

// ValidDate reports whether date is a well-formed day key.
func ValidDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// FormatDate returns the day key for t in loc. A nil loc means UTC.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// AddDays steps a day key by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DateRange returns n consecutive day keys starting at start inclusive.
func DateRange(start string, n int) ([]string, error) {
	t, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, t.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates, nil
}

// DaysBetween returns the number of calendar days from "from" to "to" inclusive.
// It is zero or negative when to is before from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours()/24) + 1, nil
}

// WeekStart returns the Monday of the ISO week containing t in loc.
func WeekStart(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset).Format(DateLayout)
}
