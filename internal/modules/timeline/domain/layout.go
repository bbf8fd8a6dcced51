package domain

import (
	"sort"
	"time"
)

// Colors fixed per category; break is always gray.
const (
	ColorResearch     = "#1976D2"
	ColorStudy        = "#43A047"
	ColorMaterialPrep = "#FB8C00"
	ColorOther        = "#8E24AA"
	ColorBreak        = "#9E9E9E"
)

func ColorFor(category string) string {
	switch category {
	case "research":
		return ColorResearch
	case "study":
		return ColorStudy
	case "material_prep":
		return ColorMaterialPrep
	case "break":
		return ColorBreak
	default:
		return ColorOther
	}
}

// Span is a closed interval already clipped to its day.
type Span struct {
	Start    time.Time
	End      time.Time
	Category string
}

// Band is a span projected onto the 24h axis of its day row. Fractions
// are in [0, 1].
type Band struct {
	StartFrac float64
	WidthFrac float64
	Category  string
	Color     string
}

type Row struct {
	Date  string
	Bands []Band
}

type WeekLayout struct {
	WeekStart string
	Rows      []Row // Monday first, always seven
}

// BuildRow projects a day's spans onto the 24h axis, sorted by start.
// Spans outside [midnight, midnight+24h) are clipped; zero-width bands
// are dropped.
func BuildRow(date string, midnight time.Time, spans []Span) Row {
	axis := midnight.AddDate(0, 0, 1).Sub(midnight)
	row := Row{Date: date}
	for _, span := range spans {
		if span.Start.Before(midnight) {
			span.Start = midnight
		}
		if span.End.After(midnight.Add(axis)) {
			span.End = midnight.Add(axis)
		}
		width := span.End.Sub(span.Start)
		if width <= 0 {
			continue
		}
		row.Bands = append(row.Bands, Band{
			StartFrac: float64(span.Start.Sub(midnight)) / float64(axis),
			WidthFrac: float64(width) / float64(axis),
			Category:  span.Category,
			Color:     ColorFor(span.Category),
		})
	}
	sort.Slice(row.Bands, func(a, b int) bool { return row.Bands[a].StartFrac < row.Bands[b].StartFrac })
	return row
}
