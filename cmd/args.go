package cmd

import (
	"time"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/parser"
)

// dateArg resolves a CLI date argument in the configured time zone.
func dateArg(input string) (string, error) {
	date, err := parser.ParseDateArg(input, ctx.Now(), ctx.Location)
	return date, userError(err)
}

// weekArg resolves a CLI argument to the Monday of its week.
func weekArg(input string) (string, error) {
	start, err := parser.ParseWeekArg(input, ctx.Now(), ctx.Location)
	return start, userError(err)
}

// userError turns parser errors into user errors so they print with their
// suggestion.
func userError(err error) error {
	var tpe *parser.TimeParseError
	if errors.As(err, &tpe) {
		return tpe.ToUserError()
	}
	return err
}

// refreshInterval parses a refresh flag. Intervals under a second are rejected.
func refreshInterval(raw string) (time.Duration, error) {
	secs, err := parser.ParseSeconds(raw)
	if err != nil || secs < 1 {
		return 0, errors.InvalidField("refresh", raw, errors.ErrInvalidDuration)
	}
	return time.Duration(secs) * time.Second, nil
}
