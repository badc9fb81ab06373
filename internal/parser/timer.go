package parser

import (
	"strings"
	"time"

	"github.com/manav03panchal/daybook/internal/errors"
)

// ProcessStart resolves the start of a timer from the parsed words: the given
// start time, or now. A date shifts "now" to that day as Process does. A
// running timer has no end yet, so an end or a duration is rejected.
func (p *LogArgs) ProcessStart(now time.Time, loc *time.Location) error {
	if p.RawEnd != "" || p.RawDuration != "" {
		return errors.NewUserError(
			"a running timer has no end yet",
			"Use 'daybook log' to record a finished session.",
		)
	}
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

	p.Start = now
	if p.RawStart != "" {
		t, err := parseClock(p.RawStart, now)
		if err != nil {
			return err
		}
		p.Start = t
	}
	p.End = nil
	p.Duration = 0
	return nil
}

// StopArgs holds the parsed arguments of a stop command, e.g.
//
//	daybook stop at 17:30 with wrapped up the review
type StopArgs struct {
	RawEnd  string
	Note    string
	HasNote bool

	// End is zero until Process finds an end time.
	End time.Time
}

// ParseStopArgs reads stop's words. Everything before "with" is the end time,
// which may open with "at", "to" or "until".
func ParseStopArgs(args []string) *StopArgs {
	result := &StopArgs{}
	var words []string
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
			var note []string
			for _, w := range rest {
				note = append(note, trimQuotes(w))
			}
			result.Note = strings.TrimSpace(strings.Join(note, " "))
			result.HasNote = result.Note != ""
			break
		}
		if len(words) == 0 && (lower == "at" || containsString(endKeywords, lower)) {
			continue
		}
		words = append(words, token)
	}
	result.RawEnd = strings.Join(words, " ")
	return result
}

// Merge overlays the --to and --note flags.
func (p *StopArgs) Merge(end, note string) {
	if end != "" {
		p.RawEnd = end
	}
	if note != "" {
		p.Note = note
		p.HasNote = true
	}
}

// Process resolves the end time relative to now. Without one End stays zero.
func (p *StopArgs) Process(now time.Time, loc *time.Location) error {
	if p.RawEnd == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	end, err := parseClock(p.RawEnd, now.In(loc))
	if err != nil {
		return err
	}
	p.End = end
	return nil
}
