package model

import "time"

// ActiveTimer is a session that has started and is not logged yet. At most
// one runs at a time.
type ActiveTimer struct {
	Project     string    `json:"project"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	Date        string    `json:"date,omitempty"`
}

// GetKey returns the storage key of the running timer.
func (a *ActiveTimer) GetKey() string {
	return KeyActive
}

// NewActiveTimer starts a timer from the labels, note and date of in.
func NewActiveTimer(in EntryInput) *ActiveTimer {
	a := &ActiveTimer{
		Project:   in.Project,
		Category:  in.Category,
		StartTime: in.StartTime,
		Date:      in.Date,
	}
	if in.Description != nil {
		desc := *in.Description
		a.Description = &desc
	}
	return a
}

// Elapsed returns the whole seconds between the start and now, or 0 when the
// start lies ahead of now.
func (a *ActiveTimer) Elapsed(now time.Time) int64 {
	if now.Before(a.StartTime) {
		return 0
	}
	return int64(now.Sub(a.StartTime) / time.Second)
}

// Finish returns the entry input for the timer stopped at end. A non-empty
// note is appended to the description.
func (a *ActiveTimer) Finish(end time.Time, note string) EntryInput {
	in := EntryInput{
		Project:   a.Project,
		Category:  a.Category,
		StartTime: a.StartTime,
		EndTime:   &end,
		Duration:  a.Elapsed(end),
		Date:      a.Date,
	}
	desc := ""
	if a.Description != nil {
		desc = *a.Description
	}
	switch {
	case note != "" && desc != "":
		desc += " - " + note
	case note != "":
		desc = note
	}
	if a.Description != nil || note != "" {
		in.Description = &desc
	}
	return in
}

// TimerStatus reports whether a timer runs and for how long it has run.
type TimerStatus struct {
	Running bool         `json:"running"`
	Timer   *ActiveTimer `json:"timer,omitempty"`
	Elapsed int64        `json:"elapsed"`
}
