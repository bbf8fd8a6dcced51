package out

import (
	"context"

	"worklog/internal/modules/calendar/domain"
)

type EventStore interface {
	Insert(ctx context.Context, event domain.Event) error
	Get(ctx context.Context, eventID string) (domain.Event, error)
	Delete(ctx context.Context, eventID string) error
	// ListRange returns events with fromDate <= date <= toDate, every
	// grade, ordered by date then start time.
	ListRange(ctx context.Context, fromDate, toDate string) ([]domain.Event, error)
	MarkReminded(ctx context.Context, eventIDs []string) error
}
