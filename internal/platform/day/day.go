package day

import (
	"fmt"
	"time"

	apperrors "worklog/internal/platform/errors"
)

const Layout = "2006-01-02"

// Parse validates a YYYY-MM-DD date string and returns midnight of that
// day in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrFormat)
	}
	return t, nil
}

// Clock validates an HH:MM string and returns the offset from midnight.
func Clock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: time must be HH:MM", apperrors.ErrFormat)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Of formats t as the user-date it belongs to in loc.
func Of(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// WeekStart returns midnight of the Monday of the week containing t,
// in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// Shift returns the date days after (or before, when negative) a
// YYYY-MM-DD date.
func Shift(date string, days int, loc *time.Location) (string, error) {
	t, err := Parse(date, loc)
	if err != nil {
		return "", err
	}
	return Of(t.AddDate(0, 0, days), loc), nil
}
