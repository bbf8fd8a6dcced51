package dto

import "time"

type IntervalOutput struct {
	ID       string
	UserID   string
	Date     string
	Start    time.Time
	End      time.Time
	Category string
	Source   string
}

type RecordManualInput struct {
	UserID   string
	Date     string // YYYY-MM-DD
	Start    string // HH:MM
	End      string // HH:MM
	Category string
}

// OverlapWarning names an already-stored interval the new entry collides
// with. It is informational; the entry is stored regardless.
type OverlapWarning struct {
	IntervalID string
	Date       string
	Start      string // HH:MM
	End        string // HH:MM
	Category   string
}

type RecordManualOutput struct {
	Interval IntervalOutput
	Warnings []OverlapWarning
}

type OpenIntervalInput struct {
	UserID   string
	Category string
	At       time.Time
}
