package usecase

import (
	"context"
	"time"

	reportin "worklog/internal/modules/report/port/in"
	"worklog/internal/modules/timeline/domain"
	"worklog/internal/modules/timeline/dto"
	timelineout "worklog/internal/modules/timeline/port/out"
	"worklog/internal/platform/day"
)

type Interactor struct {
	reports reportin.Usecase
	encoder timelineout.ImageEncoder
	loc     *time.Location
}

func NewInteractor(reports reportin.Usecase, encoder timelineout.ImageEncoder, loc *time.Location) *Interactor {
	return &Interactor{reports: reports, encoder: encoder, loc: loc}
}

func (i *Interactor) BuildWeek(ctx context.Context, userID, anchor string) (dto.WeekLayout, error) {
	week, err := i.reports.Weekly(ctx, userID, anchor)
	if err != nil {
		return dto.WeekLayout{}, err
	}

	layout := dto.WeekLayout{WeekStart: week.WeekStart}
	for _, dayReport := range week.Days {
		midnight, err := day.Parse(dayReport.Date, i.loc)
		if err != nil {
			return dto.WeekLayout{}, err
		}
		spans := make([]domain.Span, 0, len(dayReport.Spans))
		for _, span := range dayReport.Spans {
			spans = append(spans, domain.Span{Start: span.Start, End: span.End, Category: span.Category})
		}
		row := domain.BuildRow(dayReport.Date, midnight, spans)
		layout.Rows = append(layout.Rows, toRow(row))
	}
	return layout, nil
}

func (i *Interactor) RenderPNG(ctx context.Context, userID, anchor string) ([]byte, error) {
	layout, err := i.BuildWeek(ctx, userID, anchor)
	if err != nil {
		return nil, err
	}
	return i.encoder.Encode(ctx, layout)
}

func toRow(row domain.Row) dto.Row {
	out := dto.Row{Date: row.Date}
	for _, band := range row.Bands {
		out.Bands = append(out.Bands, dto.Band{
			StartFrac: band.StartFrac,
			WidthFrac: band.WidthFrac,
			Category:  band.Category,
			Color:     band.Color,
		})
	}
	return out
}
