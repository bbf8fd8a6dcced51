package usecase

import (
	"context"
	"time"

	intervaldto "worklog/internal/modules/interval/dto"
	intervalin "worklog/internal/modules/interval/port/in"
	journalin "worklog/internal/modules/journal/port/in"
	"worklog/internal/modules/report/domain"
	"worklog/internal/modules/report/dto"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/day"
)

type Interactor struct {
	clk       clock.Clock
	intervals intervalin.Usecase
	journal   journalin.Usecase
	loc       *time.Location
}

func NewInteractor(clk clock.Clock, intervals intervalin.Usecase, journal journalin.Usecase, loc *time.Location) *Interactor {
	return &Interactor{clk: clk, intervals: intervals, journal: journal, loc: loc}
}

func (i *Interactor) Daily(ctx context.Context, userID, date string) (dto.DailyReport, error) {
	if date == "" {
		date = day.Of(i.clk.Now(), i.loc)
	}
	midnight, err := day.Parse(date, i.loc)
	if err != nil {
		return dto.DailyReport{}, err
	}
	intervals, err := i.intervals.ListDay(ctx, userID, date)
	if err != nil {
		return dto.DailyReport{}, err
	}
	report := i.buildDay(date, midnight, intervals)

	note, err := i.journal.GetNote(ctx, userID, date)
	if err != nil {
		return dto.DailyReport{}, err
	}
	report.Note = note.Text
	return report, nil
}

func (i *Interactor) Weekly(ctx context.Context, userID, anchor string) (dto.WeeklyReport, error) {
	at := i.clk.Now()
	if anchor != "" {
		parsed, err := day.Parse(anchor, i.loc)
		if err != nil {
			return dto.WeeklyReport{}, err
		}
		at = parsed
	}
	weekStart := day.WeekStart(at, i.loc)
	fromDate := day.Of(weekStart, i.loc)
	toDate := day.Of(weekStart.AddDate(0, 0, 6), i.loc)

	intervals, err := i.intervals.ListRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return dto.WeeklyReport{}, err
	}
	byDate := map[string][]intervaldto.IntervalOutput{}
	for _, iv := range intervals {
		byDate[iv.Date] = append(byDate[iv.Date], iv)
	}

	week := dto.WeeklyReport{
		WeekStart: fromDate,
		Totals:    map[string]time.Duration{},
	}
	for offset := 0; offset < 7; offset++ {
		midnight := weekStart.AddDate(0, 0, offset)
		date := day.Of(midnight, i.loc)
		dayReport := i.buildDay(date, midnight, byDate[date])

		note, err := i.journal.GetNote(ctx, userID, date)
		if err != nil {
			return dto.WeeklyReport{}, err
		}
		dayReport.Note = note.Text

		week.Days = append(week.Days, dayReport)
		domain.Merge(week.Totals, dayReport.Totals)
	}
	week.Worked = domain.Worked(week.Totals)
	return week, nil
}

// buildDay clips closed intervals to the day window and totals them.
func (i *Interactor) buildDay(date string, midnight time.Time, intervals []intervaldto.IntervalOutput) dto.DailyReport {
	dayEnd := midnight.AddDate(0, 0, 1)
	spans := []domain.Span{}
	for _, iv := range intervals {
		if iv.End.IsZero() {
			continue
		}
		span, ok := domain.Clip(domain.Span{Start: iv.Start, End: iv.End, Category: iv.Category}, midnight, dayEnd)
		if !ok {
			continue
		}
		spans = append(spans, span)
	}

	report := dto.DailyReport{Date: date, Totals: domain.Totals(spans)}
	for _, span := range spans {
		report.Spans = append(report.Spans, dto.SpanOutput{Start: span.Start, End: span.End, Category: span.Category})
	}
	return report
}
