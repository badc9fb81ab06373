// Package tracker implements the Daybook domain: the entry lifecycle, day and
// week aggregation, and the project and category registries. Every operation
// runs inside one storage transaction.
package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/palette"
	"github.com/manav03panchal/daybook/internal/storage"
)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	// Location decides the calendar day of a start time when no date is given.
	Location *time.Location
	// Palette is the colour palette for labels.
	Palette palette.Palette
	// Now returns the current time.
	Now func() time.Time
	// NewID returns a fresh entry id.
	NewID func() string
}

// Service exposes every logical Daybook operation.
type Service struct {
	store   *storage.Store
	loc     *time.Location
	palette palette.Palette
	now     func() time.Time
	newID   func() string
}

// New creates a service over store.
func New(store *storage.Store, opts Options) *Service {
	s := &Service{
		store:   store,
		loc:     opts.Location,
		palette: opts.Palette,
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if len(s.palette) == 0 {
		s.palette = palette.Default
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	return s
}

// Location returns the time zone used to derive dates from start times.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today returns today's date key in the service time zone.
func (s *Service) Today() string {
	return model.FormatDate(s.now(), s.loc)
}

// ThisWeek returns the Monday of the current week.
func (s *Service) ThisWeek() string {
	return model.WeekStart(s.now(), s.loc)
}

// Check reports on the consistency of the stored buckets and index.
func (s *Service) Check(ctx context.Context) *storage.HealthStatus {
	return storage.CheckIntegrity(ctx, s.store)
}
