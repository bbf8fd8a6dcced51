package usecase

import (
	"context"
	"sort"

	"worklog/internal/modules/calendar/domain"
	"worklog/internal/modules/calendar/dto"
	"worklog/internal/modules/calendar/service"
)

type Interactor struct {
	calendar *service.CalendarService
}

func NewInteractor(calendar *service.CalendarService) *Interactor {
	return &Interactor{calendar: calendar}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterEventInput) (dto.EventOutput, error) {
	event, err := i.calendar.Register(ctx, domain.Event{
		Grade:          domain.Grade(input.Grade),
		Title:          input.Title,
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		LocationType:   domain.LocationType(input.LocationType),
		LocationDetail: input.LocationDetail,
		CreatedBy:      input.CreatedBy,
	})
	if err != nil {
		return dto.EventOutput{}, err
	}
	return toOutput(event), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListEventsInput) ([]dto.EventOutput, error) {
	events, err := i.calendar.List(ctx, domain.Grade(input.Grade), input.From, input.Days)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		outputs = append(outputs, toOutput(e))
	}
	return outputs, nil
}

func (i *Interactor) Remove(ctx context.Context, eventID, userID string) error {
	return i.calendar.Remove(ctx, eventID, userID)
}

func (i *Interactor) DueTomorrow(ctx context.Context, date string) ([]dto.GradeBatch, error) {
	perGrade, err := i.calendar.DueTomorrow(ctx, date)
	if err != nil {
		return nil, err
	}
	batches := make([]dto.GradeBatch, 0, len(perGrade))
	for grade, events := range perGrade {
		batch := dto.GradeBatch{Grade: string(grade)}
		for _, e := range events {
			batch.Events = append(batch.Events, toOutput(e))
		}
		batches = append(batches, batch)
	}
	sort.Slice(batches, func(a, b int) bool { return batches[a].Grade < batches[b].Grade })
	return batches, nil
}

func (i *Interactor) MarkReminded(ctx context.Context, eventIDs []string) error {
	return i.calendar.MarkReminded(ctx, eventIDs)
}

func toOutput(e domain.Event) dto.EventOutput {
	return dto.EventOutput{
		ID:             e.ID,
		Grade:          string(e.Grade),
		Title:          e.Title,
		Date:           e.Date,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		LocationType:   string(e.LocationType),
		LocationDetail: e.LocationDetail,
		CreatedBy:      e.CreatedBy,
	}
}
