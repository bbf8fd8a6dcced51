package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	reportdto "worklog/internal/modules/report/dto"
	"worklog/internal/modules/timeline/domain"
	"worklog/internal/modules/timeline/dto"
)

type stubReports struct {
	week reportdto.WeeklyReport
}

func (s stubReports) Daily(context.Context, string, string) (reportdto.DailyReport, error) {
	panic("not used")
}

func (s stubReports) Weekly(context.Context, string, string) (reportdto.WeeklyReport, error) {
	return s.week, nil
}

type stubEncoder struct {
	encoded []dto.WeekLayout
}

func (e *stubEncoder) Encode(_ context.Context, layout dto.WeekLayout) ([]byte, error) {
	e.encoded = append(e.encoded, layout)
	return []byte("png"), nil
}

func spanAt(t *testing.T, date, start, end, category string) reportdto.SpanOutput {
	t.Helper()
	s, err := time.Parse("2006-01-02 15:04", date+" "+start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	e, err := time.Parse("2006-01-02 15:04", date+" "+end)
	if err != nil {
		t.Fatalf("parse end: %v", err)
	}
	return reportdto.SpanOutput{Start: s, End: e, Category: category}
}

func denseWeek(t *testing.T) reportdto.WeeklyReport {
	t.Helper()
	week := reportdto.WeeklyReport{WeekStart: "2026-03-02"}
	for offset := 0; offset < 7; offset++ {
		date := time.Date(2026, 3, 2+offset, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		week.Days = append(week.Days, reportdto.DailyReport{Date: date})
	}
	return week
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildWeekTuesdayBands(t *testing.T) {
	t.Parallel()

	week := denseWeek(t)
	week.Days[1].Spans = []reportdto.SpanOutput{
		spanAt(t, "2026-03-03", "09:00", "10:00", "research"),
		spanAt(t, "2026-03-03", "10:00", "10:15", "break"),
	}
	interactor := NewInteractor(stubReports{week: week}, &stubEncoder{}, time.UTC)

	layout, err := interactor.BuildWeek(context.Background(), "u1", "2026-03-03")
	if err != nil {
		t.Fatalf("BuildWeek: %v", err)
	}
	if len(layout.Rows) != 7 {
		t.Fatalf("rows = %d, want 7", len(layout.Rows))
	}

	tuesday := layout.Rows[1]
	if len(tuesday.Bands) != 2 {
		t.Fatalf("tuesday bands = %d, want 2", len(tuesday.Bands))
	}
	work, rest := tuesday.Bands[0], tuesday.Bands[1]
	if !closeEnough(work.StartFrac, 9.0/24) || !closeEnough(work.WidthFrac, 1.0/24) {
		t.Fatalf("work band fractions = %v/%v", work.StartFrac, work.WidthFrac)
	}
	if work.Color != domain.ColorResearch {
		t.Fatalf("work band color = %s, want research blue", work.Color)
	}
	if !closeEnough(rest.StartFrac, 10.0/24) || !closeEnough(rest.WidthFrac, 0.25/24) {
		t.Fatalf("break band fractions = %v/%v", rest.StartFrac, rest.WidthFrac)
	}
	if rest.Color != domain.ColorBreak {
		t.Fatalf("break band color = %s, want gray", rest.Color)
	}
	if !closeEnough(work.StartFrac+work.WidthFrac, rest.StartFrac) {
		t.Fatalf("bands must be adjacent")
	}

	for _, offset := range []int{0, 2, 3, 4, 5, 6} {
		if len(layout.Rows[offset].Bands) != 0 {
			t.Fatalf("day %d must be empty", offset)
		}
	}
}

func TestRenderPNGPassesLayoutToEncoder(t *testing.T) {
	t.Parallel()

	encoder := &stubEncoder{}
	interactor := NewInteractor(stubReports{week: denseWeek(t)}, encoder, time.UTC)

	png, err := interactor.RenderPNG(context.Background(), "u1", "2026-03-03")
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if string(png) != "png" {
		t.Fatalf("unexpected payload %q", png)
	}
	if len(encoder.encoded) != 1 || encoder.encoded[0].WeekStart != "2026-03-02" {
		t.Fatalf("encoder saw %+v", encoder.encoded)
	}
}
