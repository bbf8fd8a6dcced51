package in

import (
	"context"

	"worklog/internal/modules/calendar/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterEventInput) (dto.EventOutput, error)
	List(ctx context.Context, input dto.ListEventsInput) ([]dto.EventOutput, error)
	// Remove rejects callers other than the event's issuer with
	// apperrors.ErrNotAuthorized.
	Remove(ctx context.Context, eventID, userID string) error
	// DueTomorrow returns events dated exactly one day after date,
	// grouped per grade, skipping events already reminded.
	DueTomorrow(ctx context.Context, date string) ([]dto.GradeBatch, error)
	MarkReminded(ctx context.Context, eventIDs []string) error
}
