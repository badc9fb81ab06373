package tracker

import (
	"context"
	"time"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
)

// futureSlack is how far past the clock a timer may start or stop.
const futureSlack = time.Minute

// StartTimer starts a timer with the labels, description, start time and date
// of in. A zero start time means now. A timer that is already running is
// stopped where the new one starts and logged; that entry is returned as well.
func (s *Service) StartTimer(ctx context.Context, in model.EntryInput) (*model.ActiveTimer, *model.Entry, error) {
	now := s.now()
	if in.StartTime.IsZero() {
		in.StartTime = now
	}
	in.EndTime = nil
	in.Duration = 0

	in, err := s.clean(in)
	if err != nil {
		return nil, nil, err
	}
	if in.StartTime.After(now.Add(futureSlack)) {
		return nil, nil, errors.InvalidField("start_time", in.StartTime.Format(time.RFC3339), errors.ErrTimeInFuture)
	}
	timer := model.NewActiveTimer(in)

	var stopped *model.Entry
	err = s.store.Update(ctx, func(txn storage.Txn) error {
		active := storage.Active(txn)
		prev, err := active.Load()
		if err != nil {
			return err
		}
		if prev != nil {
			entry, err := s.finish(txn, prev, timer.StartTime, "")
			if err != nil {
				return err
			}
			stopped = &entry
		}
		if err := active.Save(timer); err != nil {
			return err
		}
		return s.registerLabels(txn, timer.Project, timer.Category)
	})
	if err != nil {
		return nil, nil, err
	}

	log := logging.FromContext(ctx)
	if stopped != nil {
		log.Info("timer stopped", logging.KeyEntryID, stopped.ID, logging.KeyDate, stopped.Date)
	}
	log.Info("timer started",
		logging.KeyProject, timer.Project,
		logging.KeyCategory, timer.Category,
		"start", timer.StartTime)
	return timer, stopped, nil
}

// StopTimer logs the running timer as an entry ending at end, or now when end
// is zero, and clears it. A non-empty note is appended to the description.
func (s *Service) StopTimer(ctx context.Context, end time.Time, note string) (model.Entry, error) {
	now := s.now()
	if end.IsZero() {
		end = now
	}
	if end.After(now.Add(futureSlack)) {
		return model.Entry{}, errors.InvalidField("end_time", end.Format(time.RFC3339), errors.ErrTimeInFuture)
	}

	var entry model.Entry
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		timer, err := storage.Active(txn).Load()
		if err != nil {
			return err
		}
		if timer == nil {
			return errors.ErrNoActiveTimer
		}
		entry, err = s.finish(txn, timer, end, note)
		return err
	})
	if err != nil {
		return model.Entry{}, err
	}

	logging.FromContext(ctx).Info("timer stopped",
		logging.KeyEntryID, entry.ID,
		logging.KeyDate, entry.Date,
		"seconds", entry.Duration)
	return entry, nil
}

// CancelTimer discards the running timer without logging it and returns it.
func (s *Service) CancelTimer(ctx context.Context) (*model.ActiveTimer, error) {
	var timer *model.ActiveTimer
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		active := storage.Active(txn)
		t, err := active.Load()
		if err != nil {
			return err
		}
		if t == nil {
			return errors.ErrNoActiveTimer
		}
		timer = t
		return active.Clear()
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("timer cancelled", logging.KeyProject, timer.Project, "start", timer.StartTime)
	return timer, nil
}

// Timer reports the running timer, if any.
func (s *Service) Timer(ctx context.Context) (model.TimerStatus, error) {
	var status model.TimerStatus
	err := s.store.View(ctx, func(txn storage.Txn) error {
		timer, err := storage.Active(txn).Load()
		if err != nil || timer == nil {
			return err
		}
		status = model.TimerStatus{Running: true, Timer: timer, Elapsed: timer.Elapsed(s.now())}
		return nil
	})
	return status, err
}

// finish turns timer into an entry ending at end and clears it.
func (s *Service) finish(txn storage.Txn, timer *model.ActiveTimer, end time.Time, note string) (model.Entry, error) {
	in, err := s.clean(timer.Finish(end, note))
	if err != nil {
		return model.Entry{}, err
	}
	entry := model.NewEntry(s.newID(), s.resolveDate(in), in)
	if err := s.insert(txn, entry); err != nil {
		return model.Entry{}, err
	}
	return entry, storage.Active(txn).Clear()
}
