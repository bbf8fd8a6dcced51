package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "worklog/internal/platform/errors"
)

func closedInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	return Interval{Start: s, End: e}
}

func TestOverlapsSharedBoundaryDoesNotOverlap(t *testing.T) {
	t.Parallel()

	a := closedInterval(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")
	b := closedInterval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z")

	if Overlaps(a, b) {
		t.Fatalf("intervals meeting at a boundary must not overlap")
	}
	if Overlaps(b, a) {
		t.Fatalf("overlap check must be symmetric")
	}
}

func TestOverlapsPartialAndContained(t *testing.T) {
	t.Parallel()

	a := closedInterval(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")
	partial := closedInterval(t, "2026-03-02T10:30:00Z", "2026-03-02T12:00:00Z")
	contained := closedInterval(t, "2026-03-02T09:30:00Z", "2026-03-02T10:00:00Z")

	if !Overlaps(a, partial) {
		t.Fatalf("partially intersecting intervals must overlap")
	}
	if !Overlaps(a, contained) {
		t.Fatalf("contained interval must overlap")
	}
}

func TestOverlapsOpenIntervalNeverOverlaps(t *testing.T) {
	t.Parallel()

	open := closedInterval(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")
	open.End = time.Time{}
	closed := closedInterval(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")

	if Overlaps(open, closed) {
		t.Fatalf("open intervals are excluded from overlap checks")
	}
}

func TestParseWorkCategoryAcceptsJapaneseLabels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  Category
	}{
		{"research", CategoryResearch},
		{"研究", CategoryResearch},
		{"勉強", CategoryStudy},
		{"資料作成", CategoryMaterialPrep},
		{"その他", CategoryOther},
		{"material_prep", CategoryMaterialPrep},
	}
	for _, tc := range cases {
		got, err := ParseWorkCategory(tc.input)
		if err != nil {
			t.Fatalf("ParseWorkCategory(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseWorkCategory(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseWorkCategoryRejectsBreak(t *testing.T) {
	t.Parallel()

	if _, err := ParseWorkCategory("break"); !errors.Is(err, apperrors.ErrFormat) {
		t.Fatalf("break is not a work category, got err %v", err)
	}
}
