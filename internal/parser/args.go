package parser

import (
	"strings"
	"time"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
)

// LogArgs holds the parsed arguments of a log command, e.g.
//
//	daybook log acme design 1h30m from 9am on yesterday with kickoff notes
type LogArgs struct {
	Project  string
	Category string
	Note     string

	// Raw strings before processing
	RawStart    string
	RawEnd      string
	RawDuration string
	RawDate     string

	HasNote bool

	// Filled in by Process
	Start    time.Time
	End      *time.Time
	Duration time.Duration
	Date     string
}

// LogFlags carries the flag values of a log or edit command. Non-empty
// values override whatever the positional arguments said.
type LogFlags struct {
	Project  string
	Category string
	Note     string
	Start    string
	End      string
	Duration string
	Date     string
}

type argSlot int

const (
	slotNone argSlot = iota
	slotStart
	slotEnd
	slotDuration
	slotDate
)

// Keywords for natural language parsing.
var (
	startKeywords    = []string{"from", "at", "since", "started"}
	endKeywords      = []string{"to", "until", "till", "end", "ended"}
	durationKeywords = []string{"for", "lasting"}
	dateKeyword      = "on"
	noteKeywords     = []string{"with", "note"}
)

// ParseLogArgs parses log command arguments. Positional words fill the
// project, then the category. A clock time or day word goes to the start and
// the first duration-like word is the duration. Keywords switch which field
// the following words belong to, so relative phrases need one ("from 2 hours
// ago"). Everything after "with" is the note.
func ParseLogArgs(args []string) *LogArgs {
	result := &LogArgs{}

	var (
		slot      argSlot
		start     []string
		end       []string
		duration  []string
		date      []string
		noteWords []string
	)

	for i := 0; i < len(args); i++ {
		token := trimQuotes(strings.TrimSpace(args[i]))
		if token == "" {
			continue
		}
		lower := strings.ToLower(token)

		if containsString(noteKeywords, lower) {
			rest := args[i+1:]
			if lower == "with" && len(rest) > 0 && strings.EqualFold(rest[0], "note") {
				rest = rest[1:]
			}
			for _, w := range rest {
				noteWords = append(noteWords, trimQuotes(w))
			}
			break
		}

		switch {
		case containsString(startKeywords, lower):
			slot = slotStart
			continue
		case containsString(endKeywords, lower):
			slot = slotEnd
			continue
		case containsString(durationKeywords, lower):
			slot = slotDuration
			continue
		case lower == dateKeyword:
			slot = slotDate
			continue
		}

		switch slot {
		case slotStart:
			start = append(start, token)
		case slotEnd:
			end = append(end, token)
		case slotDuration:
			duration = append(duration, token)
		case slotDate:
			date = append(date, token)
		default:
			switch {
			case isTimeLike(token):
				start = append(start, token)
			case IsDurationLike(token) && len(duration) == 0:
				duration = append(duration, token)
			case result.Project == "":
				result.Project = token
			case result.Category == "":
				result.Category = token
			default:
				start = append(start, token)
			}
		}
	}

	result.RawStart = strings.Join(start, " ")
	result.RawEnd = strings.Join(end, " ")
	result.RawDuration = strings.Join(duration, " ")
	result.RawDate = strings.Join(date, " ")
	if len(noteWords) > 0 {
		result.Note = strings.TrimSpace(strings.Join(noteWords, " "))
		result.HasNote = result.Note != ""
	}

	return result
}

// Merge merges flag values into parsed args (flags override).
func (p *LogArgs) Merge(flags LogFlags) {
	if flags.Project != "" {
		p.Project = flags.Project
	}
	if flags.Category != "" {
		p.Category = flags.Category
	}
	if flags.Note != "" {
		p.Note = flags.Note
		p.HasNote = true
	}
	if flags.Start != "" {
		p.RawStart = flags.Start
	}
	if flags.End != "" {
		p.RawEnd = flags.End
	}
	if flags.Duration != "" {
		p.RawDuration = flags.Duration
	}
	if flags.Date != "" {
		p.RawDate = flags.Date
	}
}

// Process converts raw strings to typed values relative to now in loc and
// fills in whichever of start, end and duration can be derived from the others.
// With only a duration the session is taken to end now; with only a start it
// runs until now. A date shifts "now" to the same clock time on that day.
func (p *LogArgs) Process(now time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	if p.RawDate != "" {
		date, day, err := resolveDay(p.RawDate, now, loc)
		if err != nil {
			return err
		}
		p.Date = date
		now = day
	}

	var (
		start, end       time.Time
		hasStart, hasEnd bool
		dur              time.Duration
		hasDuration      bool
	)

	if p.RawStart != "" {
		t, err := parseClock(p.RawStart, now)
		if err != nil {
			return err
		}
		start, hasStart = t, true
	}

	if p.RawEnd != "" {
		t, err := parseClock(p.RawEnd, now)
		if err != nil {
			return err
		}
		end, hasEnd = t, true
	}

	if p.RawDuration != "" {
		d, err := parseSpan(p.RawDuration)
		if err != nil {
			return err
		}
		dur, hasDuration = d, true
	}

	switch {
	case hasStart && hasEnd:
		if !hasDuration {
			dur = end.Sub(start)
		}
	case hasStart && hasDuration:
		end = start.Add(dur)
	case hasEnd && hasDuration:
		start = end.Add(-dur)
	case hasDuration:
		end = now
		start = now.Add(-dur)
	case hasStart:
		end = now
		dur = now.Sub(start)
	default:
		return errors.NewUserError(
			"nothing to log",
			"Give a duration like '1h30m' or a start time like 'from 9am'.",
		)
	}

	if end.Before(start) {
		return errors.InvalidField("end", p.RawEnd, errors.ErrEndBeforeStart)
	}

	p.Start = start
	p.End = &end
	p.Duration = dur

	return nil
}

// Apply overlays the flags of an edit command on an existing entry and
// returns the input for the update. Times are read relative to the entry's
// day, or to --date when given. A new start keeps the duration, a new end
// keeps the start, and a new duration moves the end.
func (f LogFlags) Apply(e model.Entry, now time.Time, loc *time.Location) (model.EntryInput, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	in := e.Input()
	if f.Project != "" {
		in.Project = f.Project
	}
	if f.Category != "" {
		in.Category = f.Category
	}
	if f.Note != "" {
		note := f.Note
		in.Description = &note
	}

	ref := now
	if e.Date != "" {
		if day, err := model.ParseDate(e.Date); err == nil {
			ref = onDay(day, now, loc)
		}
	}
	if f.Date != "" {
		date, day, err := resolveDay(f.Date, now, loc)
		if err != nil {
			return in, err
		}
		in.Date = date
		ref = day
	}

	if f.Start == "" && f.End == "" && f.Duration == "" {
		return in, nil
	}

	start := e.StartTime
	dur := time.Duration(e.Duration) * time.Second
	var end time.Time
	if e.EndTime != nil {
		end = *e.EndTime
	} else {
		end = start.Add(dur)
	}

	hasStart, hasEnd, hasDuration := f.Start != "", f.End != "", f.Duration != ""
	var err error
	if hasStart {
		if start, err = parseClock(f.Start, ref); err != nil {
			return in, err
		}
	}
	if hasEnd {
		if end, err = parseClock(f.End, ref); err != nil {
			return in, err
		}
	}
	if hasDuration {
		if dur, err = parseSpan(f.Duration); err != nil {
			return in, err
		}
	}

	switch {
	case hasStart && hasEnd:
		if !hasDuration {
			dur = end.Sub(start)
		}
	case hasEnd && hasDuration:
		start = end.Add(-dur)
	case hasEnd:
		dur = end.Sub(start)
	default:
		end = start.Add(dur)
	}

	if end.Before(start) {
		return in, errors.InvalidField("end", f.End, errors.ErrEndBeforeStart)
	}

	// A moved start picks its own day unless one was asked for.
	if hasStart && f.Date == "" {
		in.Date = ""
	}
	in.StartTime = start
	in.EndTime = &end
	in.Duration = int64(dur.Round(time.Second) / time.Second)
	return in, nil
}

// resolveDay parses a date argument and returns its key and the same clock
// time as now on that day.
func resolveDay(raw string, now time.Time, loc *time.Location) (string, time.Time, error) {
	date, err := ParseDateArg(raw, now, loc)
	if err != nil {
		var tpe *TimeParseError
		if errors.As(err, &tpe) {
			return "", now, tpe.ToUserError()
		}
		return "", now, err
	}
	day, _ := model.ParseDate(date)
	return date, onDay(day, now, loc), nil
}

func onDay(day, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

func parseClock(raw string, now time.Time) (time.Time, error) {
	result := ParseTimestampAt(raw, now)
	if result.Error != nil {
		return time.Time{}, NewTimestampError(raw).ToUserError()
	}
	return result.Time, nil
}

func parseSpan(raw string) (time.Duration, error) {
	secs, err := ParseSeconds(raw)
	if err != nil {
		var tpe *TimeParseError
		if errors.As(err, &tpe) {
			return 0, tpe.ToUserError()
		}
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// DurationSeconds returns the processed duration in whole seconds.
func (p *LogArgs) DurationSeconds() int64 {
	return int64(p.Duration.Round(time.Second) / time.Second)
}

// Input converts processed args into an entry input.
func (p *LogArgs) Input() model.EntryInput {
	in := model.EntryInput{
		Project:   p.Project,
		Category:  p.Category,
		StartTime: p.Start,
		EndTime:   p.End,
		Duration:  p.DurationSeconds(),
		Date:      p.Date,
	}
	if p.HasNote {
		note := p.Note
		in.Description = &note
	}
	return in
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// containsString checks if a slice contains a string.
func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// isTimeLike checks if a token looks like a time expression.
func isTimeLike(token string) bool {
	timeLikeWords := []string{
		"now", "today", "yesterday", "tomorrow",
		"ago", "last", "this", "next", "previous", "noon", "midnight",
		"morning", "afternoon", "evening", "night",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}

	tokenLower := strings.ToLower(token)
	for _, word := range timeLikeWords {
		if tokenLower == word {
			return true
		}
	}

	// Clock times such as 9am, 14:30, 5:30pm
	if len(token) > 0 && token[0] >= '0' && token[0] <= '9' {
		return strings.HasSuffix(tokenLower, "am") || strings.HasSuffix(tokenLower, "pm") ||
			strings.Contains(token, ":")
	}

	return false
}
