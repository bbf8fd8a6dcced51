package day

import (
	"errors"
	"testing"
	"time"

	apperrors "worklog/internal/platform/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse("2026-03-02", time.UTC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	if _, err := Parse("02/03/2026", time.UTC); !errors.Is(err, apperrors.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestClock(t *testing.T) {
	t.Parallel()

	d, err := Clock("09:30")
	if err != nil {
		t.Fatalf("Clock: %v", err)
	}
	if want := 9*time.Hour + 30*time.Minute; d != want {
		t.Fatalf("Clock(09:30) = %v, want %v", d, want)
	}
	if _, err := Clock("9:30pm"); !errors.Is(err, apperrors.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestWeekStartAnchorsOnMonday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2026-03-02", "2026-03-02"}, // Monday maps to itself
		{"2026-03-04", "2026-03-02"}, // Wednesday
		{"2026-03-08", "2026-03-02"}, // Sunday stays in the same week
	}
	for _, tc := range cases {
		at, err := Parse(tc.in, time.UTC)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got := Of(WeekStart(at, time.UTC), time.UTC); got != tc.want {
			t.Fatalf("WeekStart(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestShift(t *testing.T) {
	t.Parallel()

	got, err := Shift("2026-02-28", 1, time.UTC)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if got != "2026-03-01" {
		t.Fatalf("Shift(2026-02-28, 1) = %s, want 2026-03-01", got)
	}
}
