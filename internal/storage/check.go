package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/manav03panchal/daybook/internal/model"
)

// HealthStatus is the result of a storage health check. Duplicates lists ids
// stored in more than one day bucket.
type HealthStatus struct {
	Healthy    bool        `json:"healthy"`
	Driver     Driver      `json:"driver"`
	Days       int         `json:"days"`
	Entries    int         `json:"entries"`
	Indexed    int         `json:"indexed"`
	LastCheck  time.Time   `json:"last_check"`
	ErrorCount int         `json:"error_count"`
	Errors     []string    `json:"errors,omitempty"`
	Duplicates []string    `json:"duplicates,omitempty"`
	Disk       *DiskStatus `json:"disk,omitempty"`
}

// CheckIntegrity decodes every day bucket and compares its entries with the index.
// It never writes; drifted totals and duplicate ids are reported, not repaired.
// Low disk space is reported as a warning and leaves the store healthy.
func CheckIntegrity(ctx context.Context, s *Store) *HealthStatus {
	status := &HealthStatus{
		Healthy:   true,
		Driver:    s.Driver(),
		LastCheck: time.Now(),
	}
	fail := func(format string, args ...any) {
		status.Errors = append(status.Errors, fmt.Sprintf(format, args...))
		status.ErrorCount++
	}

	err := s.View(ctx, func(txn Txn) error {
		dates, err := Days(txn).Dates()
		if err != nil {
			return err
		}
		status.Days = len(dates)

		idx := Index(txn)
		seen := map[string]string{}
		for _, date := range dates {
			var bucket model.DayBucket
			if err := getJSON(txn, model.DayKey(date), &bucket); err != nil {
				fail("day %s: %v", date, err)
				continue
			}
			status.Entries += len(bucket.Entries)
			if bucket.TotalDuration != bucket.Sum() {
				fail("day %s: stored total %d, entries sum to %d", date, bucket.TotalDuration, bucket.Sum())
			}
			for _, e := range bucket.Entries {
				if first, dup := seen[e.ID]; dup {
					fail("entry %s is stored on %s and %s", e.ID, first, date)
					status.Duplicates = append(status.Duplicates, e.ID)
					continue
				}
				seen[e.ID] = date
				indexed, err := idx.Lookup(e.ID)
				if err != nil || indexed != date {
					fail("entry %s in day %s is not indexed there", e.ID, date)
				}
			}
		}

		ids, err := idx.IDs()
		if err != nil {
			return err
		}
		status.Indexed = len(ids)
		return nil
	})
	if err != nil {
		fail("scan: %v", err)
	}

	if path := s.Path(); path != "" {
		if disk, err := DiskUsage(path); err == nil {
			status.Disk = disk
		}
	}

	status.Healthy = status.ErrorCount == 0
	return status
}

// Dump is a raw snapshot of every stored key.
type Dump map[string]json.RawMessage

// Export reads every key and value for backups.
func Export(ctx context.Context, s *Store) (Dump, error) {
	dump := Dump{}
	err := s.View(ctx, func(txn Txn) error {
		keys, err := txn.Keys("")
		if err != nil {
			return err
		}
		for _, k := range keys {
			data, err := txn.Get(k)
			if err != nil {
				return fmt.Errorf("export %s: %w", k, err)
			}
			dump[k] = json.RawMessage(data)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dump, nil
}

// ImportResult counts what Import did with each key of a dump.
type ImportResult struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}

// Import writes every key of dump in one transaction. Keys that already exist
// are skipped unless overwrite is set. Values must be valid JSON.
func Import(ctx context.Context, s *Store, dump Dump, overwrite bool) (ImportResult, error) {
	var res ImportResult
	keys := make([]string, 0, len(dump))
	for k := range dump {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := s.Update(ctx, func(txn Txn) error {
		res = ImportResult{}
		for _, k := range keys {
			value := dump[k]
			if !json.Valid(value) {
				return fmt.Errorf("import %s: value is not valid JSON", k)
			}
			if !overwrite {
				_, err := txn.Get(k)
				if err == nil {
					res.Skipped++
					continue
				}
				if !IsErrKeyNotFound(err) {
					return fmt.Errorf("import %s: %w", k, err)
				}
			}
			if err := txn.Set(k, value); err != nil {
				return fmt.Errorf("import %s: %w", k, err)
			}
			res.Written++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}
