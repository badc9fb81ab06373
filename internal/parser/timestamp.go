package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
)

// TimestampResult holds the parsed timestamp and any error.
type TimestampResult struct {
	Time  time.Time
	Error error
}

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(hour|day|week|month|quarter|year)$`)

// dateKeyRegex matches anything shaped like a day key, valid or not.
var dateKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseTimestamp parses a natural language timestamp expression relative to now.
func ParseTimestamp(input string) TimestampResult {
	return ParseTimestampAt(input, time.Now())
}

// ParseTimestampAt parses a timestamp expression relative to now. RFC 3339
// values are accepted verbatim; anything else goes through go-dateparser.
func ParseTimestampAt(input string, now time.Time) TimestampResult {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return TimestampResult{Time: now}
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return TimestampResult{Time: t}
	}

	if match := periodRegex.FindStringSubmatch(input); match != nil {
		return parsePeriod(match[1], match[2], now)
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return TimestampResult{Error: NewTimestampError(input)}
	}

	return TimestampResult{Time: result.Time}
}

// parsePeriod handles period expressions like "this week", "last month".
func parsePeriod(modifier, period string, now time.Time) TimestampResult {
	modifier = strings.ToLower(modifier)
	period = strings.ToLower(period)
	previous := modifier == "last" || modifier == "previous"

	var t time.Time

	switch period {
	case "hour":
		t = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		if previous {
			t = t.Add(-time.Hour)
		}

	case "day":
		t = startOfDay(now)
		if previous {
			t = t.AddDate(0, 0, -1)
		}

	case "week":
		t = startOfWeek(now)
		if previous {
			t = t.AddDate(0, 0, -7)
		}

	case "month":
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}

	case "quarter":
		quarter := (int(now.Month()) - 1) / 3
		t = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -3, 0)
		}

	case "year":
		t = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(-1, 0, 0)
		}

	default:
		return TimestampResult{Time: now}
	}

	return TimestampResult{Time: t}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// ParseDateArg resolves a CLI date argument to a day key in loc. It accepts
// YYYY-MM-DD, "today", "yesterday", "tomorrow" and anything ParseTimestampAt
// understands. An empty input means today.
func ParseDateArg(input string, now time.Time, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	input = strings.TrimSpace(input)

	switch strings.ToLower(input) {
	case "", "today":
		return model.FormatDate(now, loc), nil
	case "yesterday":
		return model.FormatDate(now.AddDate(0, 0, -1), loc), nil
	case "tomorrow":
		return model.FormatDate(now.AddDate(0, 0, 1), loc), nil
	}

	if dateKeyRegex.MatchString(input) {
		if _, err := model.ParseDate(input); err != nil {
			return "", NewDateError(input)
		}
		return input, nil
	}

	result := ParseTimestampAt(input, now)
	if result.Error != nil {
		return "", NewDateError(input)
	}
	return model.FormatDate(result.Time, loc), nil
}

// ParseWeekArg resolves a CLI week argument to the Monday day key of the week
// containing it. An empty input means the current week.
func ParseWeekArg(input string, now time.Time, loc *time.Location) (string, error) {
	date, err := ParseDateArg(input, now, loc)
	if err != nil {
		return "", err
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return "", err
	}
	return model.WeekStart(day, time.UTC), nil
}

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day keys covered by the range in loc.
func (r TimeRange) Days(loc *time.Location) (from, to string) {
	return model.FormatDate(r.Start, loc), model.FormatDate(r.End.Add(-time.Nanosecond), loc)
}

// GetPeriodRange returns the start and end of a named period around now.
// Unknown periods fall back to today.
func GetPeriodRange(period string, now time.Time) TimeRange {
	period = strings.ToLower(strings.TrimSpace(period))
	current := strings.HasPrefix(period, "this") || strings.HasPrefix(period, "current")

	var start, end time.Time

	switch {
	case strings.HasPrefix(period, "today"):
		start = startOfDay(now)
		end = start.AddDate(0, 0, 1)

	case strings.HasPrefix(period, "yesterday"):
		start = startOfDay(now).AddDate(0, 0, -1)
		end = start.AddDate(0, 0, 1)

	case strings.Contains(period, "week"):
		start = startOfWeek(now)
		if !current {
			start = start.AddDate(0, 0, -7)
		}
		end = start.AddDate(0, 0, 7)

	case strings.Contains(period, "month"):
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if !current {
			start = start.AddDate(0, -1, 0)
		}
		end = start.AddDate(0, 1, 0)

	case strings.Contains(period, "quarter"):
		quarter := (int(now.Month()) - 1) / 3
		start = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		if !current {
			start = start.AddDate(0, -3, 0)
		}
		end = start.AddDate(0, 3, 0)

	case strings.Contains(period, "year"):
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if !current {
			start = start.AddDate(-1, 0, 0)
		}
		end = start.AddDate(1, 0, 0)

	default:
		start = startOfDay(now)
		end = start.AddDate(0, 0, 1)
	}

	return TimeRange{Start: start, End: end}
}

// ParsePeriod is GetPeriodRange for user input: names IsPeriod does not
// accept are an error instead of today.
func ParsePeriod(period string, now time.Time) (TimeRange, error) {
	if !IsPeriod(period) {
		return TimeRange{}, NewDateRangeError(period)
	}
	return GetPeriodRange(period, now), nil
}

// ParseDayRange resolves two CLI date arguments to an inclusive range of day
// keys. An empty to means today.
func ParseDayRange(from, to string, now time.Time, loc *time.Location) (string, string, error) {
	first, err := ParseDateArg(from, now, loc)
	if err != nil {
		return "", "", err
	}
	last, err := ParseDateArg(to, now, loc)
	if err != nil {
		return "", "", err
	}
	if last < first {
		e := NewDateRangeError(strings.TrimSpace(from + " to " + to))
		e.Message = fmt.Sprintf("%s is after %s", first, last)
		e.Suggestion = "Put the earlier day in --from and the later one in --to."
		e.Cause = errors.ErrEndBeforeStart
		return "", "", e
	}
	return first, last, nil
}

// IsPeriod reports whether input names a period GetPeriodRange understands.
func IsPeriod(input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	switch input {
	case "today", "yesterday":
		return true
	}
	return periodRegex.MatchString(input)
}
