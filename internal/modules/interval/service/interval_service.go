package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worklog/internal/modules/interval/domain"
	intervalout "worklog/internal/modules/interval/port/out"
	"worklog/internal/platform/day"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/id"
)

type IntervalService struct {
	idGen id.Generator
	store intervalout.IntervalStore
	loc   *time.Location
}

func NewIntervalService(idGen id.Generator, store intervalout.IntervalStore, loc *time.Location) *IntervalService {
	return &IntervalService{idGen: idGen, store: store, loc: loc}
}

// RecordManual validates and stores a closed manual interval. Overlapping
// entries are stored anyway; the conflicting intervals are returned so the
// caller can surface a warning.
func (s *IntervalService) RecordManual(ctx context.Context, userID, date, start, end, category string) (domain.Interval, []domain.Interval, error) {
	cat, err := domain.ParseWorkCategory(category)
	if err != nil {
		return domain.Interval{}, nil, err
	}
	midnight, err := day.Parse(date, s.loc)
	if err != nil {
		return domain.Interval{}, nil, err
	}
	startOffset, err := day.Clock(start)
	if err != nil {
		return domain.Interval{}, nil, err
	}
	endOffset, err := day.Clock(end)
	if err != nil {
		return domain.Interval{}, nil, err
	}
	if endOffset <= startOffset {
		return domain.Interval{}, nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrFormat)
	}

	interval := domain.Interval{
		ID:       s.idGen.New(),
		UserID:   userID,
		Date:     date,
		Start:    midnight.Add(startOffset),
		End:      midnight.Add(endOffset),
		Category: cat,
		Source:   domain.SourceManual,
	}

	existing, err := s.store.ListDay(ctx, userID, date)
	if err != nil {
		return domain.Interval{}, nil, err
	}
	conflicts := []domain.Interval{}
	for _, other := range existing {
		if domain.Overlaps(interval, other) {
			conflicts = append(conflicts, other)
		}
	}

	if err := s.store.Insert(ctx, interval); err != nil {
		return domain.Interval{}, nil, err
	}
	return interval, conflicts, nil
}

// Open starts a new open interval for the user. At most one interval may
// be open per user at any time.
func (s *IntervalService) Open(ctx context.Context, userID string, category domain.Category, at time.Time) (domain.Interval, error) {
	if _, err := s.store.OpenInterval(ctx, userID); err == nil {
		return domain.Interval{}, apperrors.ErrAlreadyActive
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Interval{}, err
	}

	interval := domain.Interval{
		ID:       s.idGen.New(),
		UserID:   userID,
		Date:     day.Of(at, s.loc),
		Start:    at,
		Category: category,
		Source:   domain.SourceAuto,
	}
	if err := s.store.Insert(ctx, interval); err != nil {
		return domain.Interval{}, err
	}
	return interval, nil
}

func (s *IntervalService) Close(ctx context.Context, intervalID string, at time.Time) error {
	return s.store.Close(ctx, intervalID, at)
}

func (s *IntervalService) ListDay(ctx context.Context, userID, date string) ([]domain.Interval, error) {
	return s.store.ListDay(ctx, userID, date)
}

func (s *IntervalService) ListRange(ctx context.Context, userID, fromDate, toDate string) ([]domain.Interval, error) {
	return s.store.ListRange(ctx, userID, fromDate, toDate)
}
