package model

import "time"

// Entry is one recorded timed work session.
type Entry struct {
	ID          string     `json:"id"`
	Project     string     `json:"project"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Duration    int64      `json:"duration"`
	Date        string     `json:"date"`
}

// EntryInput carries the caller-supplied fields for creating or updating an entry.
// Date is optional; when empty the day is derived from StartTime.
type EntryInput struct {
	Project     string     `json:"project"`
	Category    string     `json:"category"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int64      `json:"duration"`
	Date        string     `json:"date,omitempty"`
}

// NewEntry builds an entry with the given id and date from input.
func NewEntry(id, date string, in EntryInput) Entry {
	e := Entry{
		ID:        id,
		Project:   in.Project,
		Category:  in.Category,
		StartTime: in.StartTime,
		Duration:  in.Duration,
		Date:      date,
	}
	if in.Description != nil {
		desc := *in.Description
		e.Description = &desc
	}
	if in.EndTime != nil {
		end := *in.EndTime
		e.EndTime = &end
	}
	return e
}

// DurationValue returns the entry duration as a time.Duration.
func (e Entry) DurationValue() time.Duration {
	return time.Duration(e.Duration) * time.Second
}

// DescriptionText returns the description or an empty string.
func (e Entry) DescriptionText() string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}

// Input returns the fields of e as an input that recreates it on the same day.
func (e Entry) Input() EntryInput {
	return EntryInput{
		Project:     e.Project,
		Category:    e.Category,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Duration:    e.Duration,
		Date:        e.Date,
	}
}
