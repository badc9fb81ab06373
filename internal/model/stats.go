package model

// Stats aggregates durations over a run of calendar days.
type Stats struct {
	From              string           `json:"from"`
	To                string           `json:"to"`
	TotalSeconds      int64            `json:"total_seconds"`
	DailyBreakdown    map[string]int64 `json:"daily_breakdown"`
	ProjectBreakdown  map[string]int64 `json:"project_breakdown"`
	CategoryBreakdown map[string]int64 `json:"category_breakdown"`
}

// NewStats returns empty stats for the inclusive range from..to.
func NewStats(from, to string) *Stats {
	return &Stats{
		From:              from,
		To:                to,
		DailyBreakdown:    map[string]int64{},
		ProjectBreakdown:  map[string]int64{},
		CategoryBreakdown: map[string]int64{},
	}
}

// AddDay folds one day bucket into the stats.
func (s *Stats) AddDay(d *DayBucket) {
	s.DailyBreakdown[d.Date] += d.TotalDuration
	s.TotalSeconds += d.TotalDuration
	for _, e := range d.Entries {
		s.ProjectBreakdown[labelOrUncategorized(e.Project)] += e.Duration
		s.CategoryBreakdown[labelOrUncategorized(e.Category)] += e.Duration
	}
}

func labelOrUncategorized(name string) string {
	if name == "" {
		return Uncategorized
	}
	return name
}
