package usecase

import (
	"context"
	"testing"
	"time"

	intervaldto "worklog/internal/modules/interval/dto"
	journaldto "worklog/internal/modules/journal/dto"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type stubIntervals struct {
	intervals []intervaldto.IntervalOutput
}

func (s stubIntervals) RecordManual(context.Context, intervaldto.RecordManualInput) (intervaldto.RecordManualOutput, error) {
	panic("not used")
}

func (s stubIntervals) OpenInterval(context.Context, intervaldto.OpenIntervalInput) (intervaldto.IntervalOutput, error) {
	panic("not used")
}

func (s stubIntervals) CloseInterval(context.Context, string, time.Time) error {
	panic("not used")
}

func (s stubIntervals) ListDay(_ context.Context, _, date string) ([]intervaldto.IntervalOutput, error) {
	matched := []intervaldto.IntervalOutput{}
	for _, iv := range s.intervals {
		if iv.Date == date {
			matched = append(matched, iv)
		}
	}
	return matched, nil
}

func (s stubIntervals) ListRange(_ context.Context, _, fromDate, toDate string) ([]intervaldto.IntervalOutput, error) {
	matched := []intervaldto.IntervalOutput{}
	for _, iv := range s.intervals {
		if iv.Date >= fromDate && iv.Date <= toDate {
			matched = append(matched, iv)
		}
	}
	return matched, nil
}

type stubJournal struct {
	notes map[string]string
}

func (s stubJournal) AppendNote(context.Context, journaldto.AppendNoteInput) (journaldto.NoteOutput, error) {
	panic("not used")
}

func (s stubJournal) GetNote(_ context.Context, userID, date string) (journaldto.NoteOutput, error) {
	return journaldto.NoteOutput{UserID: userID, Date: date, Text: s.notes[date]}, nil
}

func (s stubJournal) ArmCapture(context.Context, string, string) error { panic("not used") }

func (s stubJournal) Capture(context.Context, journaldto.CaptureInput) (journaldto.CaptureOutput, error) {
	panic("not used")
}

func (s stubJournal) SweepExpired(context.Context) error { panic("not used") }

func dayTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestWeeklyEmptyWeekIsDenseZeros(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(
		fakeClock{now: dayTime(t, "2026-03-04 12:00")},
		stubIntervals{},
		stubJournal{notes: map[string]string{}},
		time.UTC,
	)

	week, err := interactor.Weekly(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if week.WeekStart != "2026-03-02" {
		t.Fatalf("week start = %s, want the Monday 2026-03-02", week.WeekStart)
	}
	if len(week.Days) != 7 {
		t.Fatalf("days = %d, want dense 7", len(week.Days))
	}
	for _, d := range week.Days {
		if len(d.Totals) != 0 {
			t.Fatalf("empty week day %s has totals %v", d.Date, d.Totals)
		}
	}
	if week.Worked != 0 {
		t.Fatalf("empty week worked = %v, want 0", week.Worked)
	}
}

func TestWeeklyTotalsPerCategoryWithBreakBucket(t *testing.T) {
	t.Parallel()

	intervals := stubIntervals{intervals: []intervaldto.IntervalOutput{
		{Date: "2026-03-02", Start: dayTime(t, "2026-03-02 09:00"), End: dayTime(t, "2026-03-02 11:00"), Category: "research"},
		{Date: "2026-03-02", Start: dayTime(t, "2026-03-02 11:00"), End: dayTime(t, "2026-03-02 11:30"), Category: "break"},
		{Date: "2026-03-03", Start: dayTime(t, "2026-03-03 14:00"), End: dayTime(t, "2026-03-03 15:00"), Category: "research"},
		{Date: "2026-03-03", Start: dayTime(t, "2026-03-03 20:00"), Category: "study"}, // still open
	}}
	interactor := NewInteractor(
		fakeClock{now: dayTime(t, "2026-03-04 12:00")},
		intervals,
		stubJournal{notes: map[string]string{"2026-03-02": "good start"}},
		time.UTC,
	)

	week, err := interactor.Weekly(context.Background(), "u1", "2026-03-06")
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if got := week.Totals["research"]; got != 3*time.Hour {
		t.Fatalf("research total = %v, want 3h", got)
	}
	if got := week.Totals["break"]; got != 30*time.Minute {
		t.Fatalf("break total = %v, want 30m", got)
	}
	if _, ok := week.Totals["study"]; ok {
		t.Fatalf("open intervals must not be counted")
	}
	if week.Worked != 3*time.Hour {
		t.Fatalf("worked = %v, want 3h excluding break", week.Worked)
	}
	if week.Days[0].Note != "good start" {
		t.Fatalf("Monday note = %q", week.Days[0].Note)
	}
}

func TestDailyClipsSpansCrossingMidnight(t *testing.T) {
	t.Parallel()

	intervals := stubIntervals{intervals: []intervaldto.IntervalOutput{
		{Date: "2026-03-02", Start: dayTime(t, "2026-03-02 23:00"), End: dayTime(t, "2026-03-03 01:00"), Category: "study"},
	}}
	interactor := NewInteractor(
		fakeClock{now: dayTime(t, "2026-03-02 12:00")},
		intervals,
		stubJournal{notes: map[string]string{}},
		time.UTC,
	)

	report, err := interactor.Daily(context.Background(), "u1", "2026-03-02")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if got := report.Totals["study"]; got != time.Hour {
		t.Fatalf("study total = %v, want the 1h inside the day", got)
	}
	if len(report.Spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(report.Spans))
	}
	if !report.Spans[0].End.Equal(dayTime(t, "2026-03-03 00:00")) {
		t.Fatalf("span must be clipped at midnight, got end %v", report.Spans[0].End)
	}
}
