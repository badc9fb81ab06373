package tracker

import (
	"context"
	"time"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
	"github.com/manav03panchal/daybook/internal/validate"
)

// CreateEntry validates in, stores it under its resolved date and returns the
// new entry. The entry's project and category are registered as a side effect.
func (s *Service) CreateEntry(ctx context.Context, in model.EntryInput) (model.Entry, error) {
	in, err := s.clean(in)
	if err != nil {
		return model.Entry{}, err
	}
	date := s.resolveDate(in)
	entry := model.NewEntry(s.newID(), date, in)

	err = s.store.Update(ctx, func(txn storage.Txn) error {
		return s.insert(txn, entry)
	})
	if err != nil {
		return model.Entry{}, err
	}

	logging.FromContext(ctx).Info("entry created",
		logging.KeyEntryID, entry.ID,
		logging.KeyDate, date,
		logging.KeyProject, entry.Project,
		logging.KeyCategory, entry.Category)
	return entry, nil
}

// insert appends entry to its day, indexes it and registers its labels.
func (s *Service) insert(txn storage.Txn, entry model.Entry) error {
	days := storage.Days(txn)
	bucket, err := days.Load(entry.Date)
	if err != nil {
		return err
	}
	bucket.Append(entry)
	if err := days.Save(bucket); err != nil {
		return err
	}
	if err := storage.Index(txn).Put(entry.ID, entry.Date); err != nil {
		return err
	}
	return s.registerLabels(txn, entry.Project, entry.Category)
}

// UpdateEntry replaces the entry with id. When the resolved date changes the
// entry moves to the new day's bucket; otherwise it keeps its position.
func (s *Service) UpdateEntry(ctx context.Context, id string, in model.EntryInput) (model.Entry, error) {
	in, err := s.clean(in)
	if err != nil {
		return model.Entry{}, err
	}
	newDate := s.resolveDate(in)
	entry := model.NewEntry(id, newDate, in)

	var oldDate string
	err = s.store.Update(ctx, func(txn storage.Txn) error {
		date, err := s.lookup(txn, id)
		if err != nil {
			return err
		}
		oldDate = date

		days := storage.Days(txn)
		oldBucket, err := days.Load(oldDate)
		if err != nil {
			return err
		}

		if oldDate == newDate {
			if !oldBucket.Replace(entry) {
				return notFound(id)
			}
			if err := days.Save(oldBucket); err != nil {
				return err
			}
			return s.registerLabels(txn, entry.Project, entry.Category)
		}

		// Move across days.
		if _, ok := oldBucket.Remove(id); !ok {
			return notFound(id)
		}
		if err := days.Save(oldBucket); err != nil {
			return err
		}
		newBucket, err := days.Load(newDate)
		if err != nil {
			return err
		}
		newBucket.Append(entry)
		if err := days.Save(newBucket); err != nil {
			return err
		}
		if err := storage.Index(txn).Put(id, newDate); err != nil {
			return err
		}
		return s.registerLabels(txn, entry.Project, entry.Category)
	})
	if err != nil {
		return model.Entry{}, err
	}

	log := logging.FromContext(ctx).With(logging.KeyEntryID, id, logging.KeyDate, newDate)
	if oldDate != newDate {
		log.Info("entry moved", "from", oldDate)
	} else {
		log.Info("entry updated")
	}
	return entry, nil
}

// DeleteEntry removes the entry with id.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	var date string
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		d, err := s.lookup(txn, id)
		if err != nil {
			return err
		}
		date = d

		days := storage.Days(txn)
		bucket, err := days.Load(date)
		if err != nil {
			return err
		}
		if _, ok := bucket.Remove(id); !ok {
			return notFound(id)
		}
		if err := days.Save(bucket); err != nil {
			return err
		}
		return storage.Index(txn).Remove(id)
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("entry deleted", logging.KeyEntryID, id, logging.KeyDate, date)
	return nil
}

// GetEntry returns the entry with id.
func (s *Service) GetEntry(ctx context.Context, id string) (model.Entry, error) {
	var entry model.Entry
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		date, err := s.lookup(txn, id)
		if err != nil {
			return err
		}
		bucket, err := storage.Days(txn).Load(date)
		if err != nil {
			return err
		}
		i := bucket.IndexOf(id)
		if i < 0 {
			return notFound(id)
		}
		entry = bucket.Entries[i]
		return nil
	})
	return entry, err
}

// Reindex rebuilds the entry index from every stored bucket and returns the
// number of indexed entries. When the same id appears on several days the
// latest day wins.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	count := 0
	err := s.store.Update(ctx, func(txn storage.Txn) error {
		idx := storage.Index(txn)
		if err := idx.Clear(); err != nil {
			return err
		}

		days := storage.Days(txn)
		dates, err := days.Dates()
		if err != nil {
			return err
		}

		seen := map[string]string{}
		for _, date := range dates {
			bucket, err := days.Load(date)
			if err != nil {
				return err
			}
			for _, e := range bucket.Entries {
				if prev, dup := seen[e.ID]; dup {
					logging.Warn("duplicate entry id", logging.KeyEntryID, e.ID, "first", prev, logging.KeyDate, date)
				} else {
					count++
				}
				seen[e.ID] = date
				if err := idx.Put(e.ID, date); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Info("index rebuilt", logging.KeyCount, count)
	return count, nil
}

// lookup returns the date of the bucket holding id.
func (s *Service) lookup(txn storage.Txn, id string) (string, error) {
	// No stored id can fail KeySegment, so such an id is unknown on every driver.
	if validate.KeySegment(id) != nil {
		return "", notFound(id)
	}
	date, err := storage.Index(txn).Lookup(id)
	if storage.IsErrKeyNotFound(err) {
		return "", notFound(id)
	}
	return date, err
}

func notFound(id string) error {
	return errors.Wrapf(errors.ErrEntryNotFound, "entry %q", id)
}

// clean trims and validates caller input.
func (s *Service) clean(in model.EntryInput) (model.EntryInput, error) {
	// Entries may leave either label empty; they are summed as Uncategorized.
	in.Project = validate.SanitizeName(in.Project)
	in.Category = validate.SanitizeName(in.Category)
	if in.Project != "" {
		if err := validate.LabelName("project", in.Project); err != nil {
			return in, err
		}
	}
	if in.Category != "" {
		if err := validate.LabelName("category", in.Category); err != nil {
			return in, err
		}
	}

	if in.Description != nil {
		desc := validate.SanitizeDescription(*in.Description)
		if err := validate.Description(desc); err != nil {
			return in, err
		}
		in.Description = &desc
	}

	if in.StartTime.IsZero() {
		return in, errors.InvalidField("start_time", "", errors.ErrInvalidTimestamp)
	}
	if in.EndTime != nil && in.EndTime.Before(in.StartTime) {
		return in, errors.InvalidField("end_time", in.EndTime.Format(time.RFC3339), errors.ErrEndBeforeStart)
	}
	if err := validate.Duration(in.Duration); err != nil {
		return in, err
	}

	if in.Date != "" {
		if _, err := model.ParseDate(in.Date); err != nil {
			return in, err
		}
	}
	return in, nil
}

// resolveDate picks the bucket for in: an explicit date wins, otherwise the
// calendar day of the start time in the service time zone.
func (s *Service) resolveDate(in model.EntryInput) string {
	if in.Date != "" {
		return in.Date
	}
	return model.FormatDate(in.StartTime, s.loc)
}
