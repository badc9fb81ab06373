package model

import "fmt"

// DayBucket holds every entry stored under one calendar day plus their cached total.
type DayBucket struct {
	Date          string  `json:"date"`
	TotalDuration int64   `json:"total_duration"`
	Entries       []Entry `json:"entries"`
}

// GetKey returns the storage key for this bucket.
func (d *DayBucket) GetKey() string {
	return DayKey(d.Date)
}

// DayKey returns the storage key for the bucket of date.
func DayKey(date string) string {
	return fmt.Sprintf("%s:%s", PrefixDay, date)
}

// NewDayBucket returns an empty bucket for date.
func NewDayBucket(date string) *DayBucket {
	return &DayBucket{Date: date, Entries: []Entry{}}
}

// Sum returns the sum of all entry durations.
func (d *DayBucket) Sum() int64 {
	var total int64
	for _, e := range d.Entries {
		total += e.Duration
	}
	return total
}

// Recompute sets TotalDuration to the sum of the entries and reports whether it
// had drifted.
func (d *DayBucket) Recompute() bool {
	sum := d.Sum()
	if sum == d.TotalDuration {
		return false
	}
	d.TotalDuration = sum
	return true
}

// IndexOf returns the position of the entry with id, or -1.
func (d *DayBucket) IndexOf(id string) int {
	for i, e := range d.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Append adds e at the end of the bucket and recomputes the total.
func (d *DayBucket) Append(e Entry) {
	d.Entries = append(d.Entries, e)
	d.Recompute()
}

// Replace swaps the entry with e.ID in place and recomputes the total.
// It reports false when no entry has that id.
func (d *DayBucket) Replace(e Entry) bool {
	i := d.IndexOf(e.ID)
	if i < 0 {
		return false
	}
	d.Entries[i] = e
	d.Recompute()
	return true
}

// Remove deletes the first entry with id and recomputes the total.
func (d *DayBucket) Remove(id string) (Entry, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return Entry{}, false
	}
	removed := d.Entries[i]
	d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
	d.Recompute()
	return removed, true
}
