package usecase

import (
	"context"
	"time"

	"worklog/internal/modules/interval/domain"
	"worklog/internal/modules/interval/dto"
	"worklog/internal/modules/interval/service"
)

type Interactor struct {
	intervals *service.IntervalService
	loc       *time.Location
}

func NewInteractor(intervals *service.IntervalService, loc *time.Location) *Interactor {
	return &Interactor{intervals: intervals, loc: loc}
}

func (i *Interactor) RecordManual(ctx context.Context, input dto.RecordManualInput) (dto.RecordManualOutput, error) {
	interval, conflicts, err := i.intervals.RecordManual(ctx, input.UserID, input.Date, input.Start, input.End, input.Category)
	if err != nil {
		return dto.RecordManualOutput{}, err
	}
	out := dto.RecordManualOutput{Interval: toOutput(interval)}
	for _, c := range conflicts {
		out.Warnings = append(out.Warnings, dto.OverlapWarning{
			IntervalID: c.ID,
			Date:       c.Date,
			Start:      c.Start.In(i.loc).Format("15:04"),
			End:        c.End.In(i.loc).Format("15:04"),
			Category:   string(c.Category),
		})
	}
	return out, nil
}

func (i *Interactor) OpenInterval(ctx context.Context, input dto.OpenIntervalInput) (dto.IntervalOutput, error) {
	cat := domain.Category(input.Category)
	if cat != domain.CategoryBreak {
		parsed, err := domain.ParseWorkCategory(input.Category)
		if err != nil {
			return dto.IntervalOutput{}, err
		}
		cat = parsed
	}
	interval, err := i.intervals.Open(ctx, input.UserID, cat, input.At)
	if err != nil {
		return dto.IntervalOutput{}, err
	}
	return toOutput(interval), nil
}

func (i *Interactor) CloseInterval(ctx context.Context, intervalID string, at time.Time) error {
	return i.intervals.Close(ctx, intervalID, at)
}

func (i *Interactor) ListDay(ctx context.Context, userID, date string) ([]dto.IntervalOutput, error) {
	intervals, err := i.intervals.ListDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return toOutputs(intervals), nil
}

func (i *Interactor) ListRange(ctx context.Context, userID, fromDate, toDate string) ([]dto.IntervalOutput, error) {
	intervals, err := i.intervals.ListRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return toOutputs(intervals), nil
}

func toOutput(iv domain.Interval) dto.IntervalOutput {
	return dto.IntervalOutput{
		ID:       iv.ID,
		UserID:   iv.UserID,
		Date:     iv.Date,
		Start:    iv.Start,
		End:      iv.End,
		Category: string(iv.Category),
		Source:   string(iv.Source),
	}
}

func toOutputs(intervals []domain.Interval) []dto.IntervalOutput {
	outputs := make([]dto.IntervalOutput, 0, len(intervals))
	for _, iv := range intervals {
		outputs = append(outputs, toOutput(iv))
	}
	return outputs
}
