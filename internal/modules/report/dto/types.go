package dto

import "time"

// SpanOutput is one closed interval clipped to its day window.
type SpanOutput struct {
	Start    time.Time
	End      time.Time
	Category string
}

type DailyReport struct {
	Date   string
	Totals map[string]time.Duration
	Spans  []SpanOutput
	Note   string
}

// WeeklyReport is the dense Monday-anchored week containing the anchor
// date. Days always has seven entries, Monday first.
type WeeklyReport struct {
	WeekStart string
	Days      []DailyReport
	Totals    map[string]time.Duration
	Worked    time.Duration
}
