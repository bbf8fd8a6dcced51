package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"worklog/internal/modules/calendar/domain"
	calendarout "worklog/internal/modules/calendar/port/out"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/day"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/id"
)

type CalendarService struct {
	clk    clock.Clock
	idGen  id.Generator
	events calendarout.EventStore
	loc    *time.Location
}

func NewCalendarService(clk clock.Clock, idGen id.Generator, events calendarout.EventStore, loc *time.Location) *CalendarService {
	return &CalendarService{clk: clk, idGen: idGen, events: events, loc: loc}
}

func (s *CalendarService) Register(ctx context.Context, event domain.Event) (domain.Event, error) {
	grade, err := domain.ParseGrade(string(event.Grade))
	if err != nil {
		return domain.Event{}, err
	}
	event.Grade = grade

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return domain.Event{}, fmt.Errorf("%w: title is required", apperrors.ErrFormat)
	}
	if _, err := day.Parse(event.Date, s.loc); err != nil {
		return domain.Event{}, err
	}
	if event.StartTime != "" {
		if _, err := day.Clock(event.StartTime); err != nil {
			return domain.Event{}, err
		}
	}
	if event.EndTime != "" {
		if event.StartTime == "" {
			return domain.Event{}, fmt.Errorf("%w: end time requires a start time", apperrors.ErrFormat)
		}
		endOffset, err := day.Clock(event.EndTime)
		if err != nil {
			return domain.Event{}, err
		}
		startOffset, _ := day.Clock(event.StartTime)
		if endOffset <= startOffset {
			return domain.Event{}, fmt.Errorf("%w: end time must be after start time", apperrors.ErrFormat)
		}
	}
	locType, err := domain.ParseLocationType(string(event.LocationType))
	if err != nil {
		return domain.Event{}, err
	}
	event.LocationType = locType

	event.ID = s.idGen.New()
	event.Remind1dSent = false
	if err := s.events.Insert(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *CalendarService) List(ctx context.Context, grade domain.Grade, from string, days int) ([]domain.Event, error) {
	if days <= 0 {
		days = 1
	}
	if from == "" {
		from = day.Of(s.clk.Now(), s.loc)
	}
	to, err := day.Shift(from, days-1, s.loc)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if grade == "" {
		return events, nil
	}
	matched := []domain.Event{}
	for _, e := range events {
		if e.Grade == grade || e.Grade == domain.GradeAll {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *CalendarService) Remove(ctx context.Context, eventID, userID string) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.RemovableBy(userID) {
		return fmt.Errorf("only the issuer may remove event %s: %w", eventID, apperrors.ErrNotAuthorized)
	}
	return s.events.Delete(ctx, eventID)
}

// DueTomorrow groups unreminded events dated date+1 per grade. ALL
// events are folded into each grade's batch.
func (s *CalendarService) DueTomorrow(ctx context.Context, date string) (map[domain.Grade][]domain.Event, error) {
	tomorrow, err := day.Shift(date, 1, s.loc)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListRange(ctx, tomorrow, tomorrow)
	if err != nil {
		return nil, err
	}

	shared := []domain.Event{}
	perGrade := map[domain.Grade][]domain.Event{}
	for _, e := range events {
		if e.Remind1dSent {
			continue
		}
		if e.Grade == domain.GradeAll {
			shared = append(shared, e)
			continue
		}
		perGrade[e.Grade] = append(perGrade[e.Grade], e)
	}
	if len(shared) > 0 {
		for _, grade := range domain.Grades() {
			perGrade[grade] = append(perGrade[grade], shared...)
		}
	}
	return perGrade, nil
}

func (s *CalendarService) MarkReminded(ctx context.Context, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	return s.events.MarkReminded(ctx, eventIDs)
}
