package storage

import (
	"strings"

	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/model"
)

// DayRepo reads and writes day buckets inside one transaction.
type DayRepo struct {
	txn Txn
}

// Days returns the day repository for txn.
func Days(txn Txn) DayRepo {
	return DayRepo{txn: txn}
}

// Load returns the bucket for date, or an empty bucket when none is stored.
// The cached total is recomputed on every load; when it had drifted from the sum
// of the entries the repaired bucket is written back straight away, so Load must
// run in an update transaction whenever repairs are possible.
func (r DayRepo) Load(date string) (*model.DayBucket, error) {
	bucket := &model.DayBucket{}
	err := getJSON(r.txn, model.DayKey(date), bucket)
	if IsErrKeyNotFound(err) {
		return model.NewDayBucket(date), nil
	}
	if err != nil {
		return nil, err
	}

	// The key is authoritative for the date.
	bucket.Date = date
	if bucket.Entries == nil {
		bucket.Entries = []model.Entry{}
	}

	stored := bucket.TotalDuration
	if bucket.Recompute() {
		logging.Warn("repaired day total",
			logging.KeyDate, date,
			"stored", stored,
			"actual", bucket.TotalDuration)
		if err := r.Save(bucket); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

// Save overwrites the bucket for its date after recomputing the total.
func (r DayRepo) Save(bucket *model.DayBucket) error {
	if bucket.Entries == nil {
		bucket.Entries = []model.Entry{}
	}
	bucket.Recompute()
	return setJSON(r.txn, bucket)
}

// Dates lists every stored day key in ascending order.
func (r DayRepo) Dates() ([]string, error) {
	prefix := model.PrefixDay + ":"
	keys, err := r.txn.Keys(prefix)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		date := strings.TrimPrefix(k, prefix)
		if model.ValidDate(date) {
			dates = append(dates, date)
		}
	}
	return dates, nil
}
