package tracker

import (
	"context"
	"fmt"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
)

const (
	// WeekDays is the length of a week summary.
	WeekDays = 7
	// MaxRangeDays bounds GetRangeStats.
	MaxRangeDays = 366
)

// GetDay returns the bucket for date with its total recomputed.
func (s *Service) GetDay(ctx context.Context, date string) (*model.DayBucket, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	var bucket *model.DayBucket
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		var err error
		bucket, err = storage.Days(txn).Load(date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bucket, nil
}

// GetWeek returns the buckets of the seven days starting at start, keyed by date.
func (s *Service) GetWeek(ctx context.Context, start string) (map[string]*model.DayBucket, error) {
	dates, err := model.DateRange(start, WeekDays)
	if err != nil {
		return nil, err
	}

	buckets, err := s.loadDays(ctx, dates)
	if err != nil {
		return nil, err
	}
	week := make(map[string]*model.DayBucket, len(buckets))
	for _, b := range buckets {
		week[b.Date] = b
	}
	return week, nil
}

// GetWeekStats totals the seven days starting at start.
func (s *Service) GetWeekStats(ctx context.Context, start string) (*model.Stats, error) {
	end, err := model.AddDays(start, WeekDays-1)
	if err != nil {
		return nil, err
	}
	return s.GetRangeStats(ctx, start, end)
}

// GetRangeStats totals every day from "from" to "to" inclusive.
func (s *Service) GetRangeStats(ctx context.Context, from, to string) (*model.Stats, error) {
	buckets, err := s.loadRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := model.NewStats(from, to)
	for _, b := range buckets {
		stats.AddDay(b)
	}
	return stats, nil
}

// ListEntries returns every entry dated from "from" to "to" inclusive, in day
// order and in insertion order within a day.
func (s *Service) ListEntries(ctx context.Context, from, to string) ([]model.Entry, error) {
	buckets, err := s.loadRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]model.Entry, 0)
	for _, b := range buckets {
		entries = append(entries, b.Entries...)
	}
	return entries, nil
}

// loadRange validates an inclusive date range and loads its buckets.
func (s *Service) loadRange(ctx context.Context, from, to string) ([]*model.DayBucket, error) {
	n, err := model.DaysBetween(from, to)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.NewUserErrorWithField("to", to,
			"end of range is before its start",
			fmt.Sprintf("Use a date on or after %s", from))
	}
	if n > MaxRangeDays {
		return nil, &errors.UserError{
			Message:    fmt.Sprintf("%s: %d days", errors.ErrRangeTooLarge.Error(), n),
			Suggestion: fmt.Sprintf("Query at most %d days at a time", MaxRangeDays),
			Field:      "to",
			Cause:      errors.ErrRangeTooLarge,
		}
	}

	dates, err := model.DateRange(from, n)
	if err != nil {
		return nil, err
	}
	return s.loadDays(ctx, dates)
}

// loadDays loads the buckets for dates in order, in a single transaction.
func (s *Service) loadDays(ctx context.Context, dates []string) ([]*model.DayBucket, error) {
	buckets := make([]*model.DayBucket, 0, len(dates))
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		days := storage.Days(txn)
		for _, date := range dates {
			b, err := days.Load(date)
			if err != nil {
				return err
			}
			buckets = append(buckets, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buckets, nil
}
