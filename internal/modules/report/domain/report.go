package domain

import "time"

// Span is a closed, categorized stretch of time inside one day.
type Span struct {
	Start    time.Time
	End      time.Time
	Category string
}

func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Totals sums span durations per category. Break time is a bucket of
// its own.
func Totals(spans []Span) map[string]time.Duration {
	totals := map[string]time.Duration{}
	for _, span := range spans {
		totals[span.Category] += span.Duration()
	}
	return totals
}

// Merge folds day totals into week totals.
func Merge(into, from map[string]time.Duration) {
	for category, d := range from {
		into[category] += d
	}
}

// Worked sums every non-break bucket.
func Worked(totals map[string]time.Duration) time.Duration {
	var sum time.Duration
	for category, d := range totals {
		if category == "break" {
			continue
		}
		sum += d
	}
	return sum
}

// Clip trims a span to the [dayStart, dayEnd) window. The second return
// is false when the span lies entirely outside the window.
func Clip(span Span, dayStart, dayEnd time.Time) (Span, bool) {
	if !span.Start.Before(dayEnd) || !span.End.After(dayStart) {
		return Span{}, false
	}
	if span.Start.Before(dayStart) {
		span.Start = dayStart
	}
	if span.End.After(dayEnd) {
		span.End = dayEnd
	}
	return span, true
}
