package parser

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// spanPart matches one amount and its unit inside a span like "1h 30m".
var spanPart = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-z]*)`)

// clockSpan matches spans written as H:MM or H:MM:SS.
var clockSpan = regexp.MustCompile(`^(\d{1,7}):([0-5]\d)(?::([0-5]\d))?$`)

// unitSeconds maps every accepted unit spelling to its length in seconds.
var unitSeconds = map[string]int64{
	"h": 3600, "hr": 3600, "hrs": 3600, "hour": 3600, "hours": 3600,
	"m": 60, "min": 60, "mins": 60, "minute": 60, "minutes": 60,
	"s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
}

// ParseSeconds reads a span such as "1h30m", "90 minutes", "2.5h", "1:30" or
// a bare number of hours and returns it in whole seconds. Fractions of a
// second are dropped, so "1.9s" is 1. Negative or unreadable spans return a
// *TimeParseError.
func ParseSeconds(input string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, NewDurationError(input)
	}
	if strings.HasPrefix(s, "-") {
		e := NewDurationError(input)
		e.Message = "duration must not be negative"
		return 0, e
	}

	if m := clockSpan.FindStringSubmatch(s); m != nil {
		return clockSeconds(m), nil
	}

	parts := spanPart.FindAllStringSubmatchIndex(s, -1)
	if len(parts) == 0 {
		return 0, NewDurationError(input)
	}

	total := new(big.Rat)
	pos := 0
	for _, idx := range parts {
		if strings.TrimSpace(s[pos:idx[0]]) != "" {
			return 0, NewDurationError(input)
		}
		pos = idx[1]

		unit := s[idx[4]:idx[5]]
		if unit == "" {
			if len(parts) > 1 {
				return 0, NewDurationError(input)
			}
			unit = "h"
		}
		scale, ok := unitSeconds[unit]
		if !ok {
			return 0, NewDurationError(input)
		}

		amount, ok := new(big.Rat).SetString(s[idx[2]:idx[3]])
		if !ok {
			return 0, NewDurationError(input)
		}
		total.Add(total, amount.Mul(amount, big.NewRat(scale, 1)))
	}
	if strings.TrimSpace(s[pos:]) != "" {
		return 0, NewDurationError(input)
	}

	whole := new(big.Int).Quo(total.Num(), total.Denom())
	if !whole.IsInt64() {
		e := NewDurationError(input)
		e.Message = "duration is too long"
		return 0, e
	}
	return whole.Int64(), nil
}

func clockSeconds(m []string) int64 {
	h, _ := strconv.ParseInt(m[1], 10, 64)
	mins, _ := strconv.ParseInt(m[2], 10, 64)
	var sec int64
	if m[3] != "" {
		sec, _ = strconv.ParseInt(m[3], 10, 64)
	}
	return h*3600 + mins*60 + sec
}

// IsDurationLike reports whether a bare word is a span ParseSeconds accepts.
func IsDurationLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	_, err := ParseSeconds(s)
	return err == nil
}
