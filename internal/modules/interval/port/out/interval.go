package out

import (
	"context"
	"time"

	"worklog/internal/modules/interval/domain"
)

type IntervalStore interface {
	Insert(ctx context.Context, interval domain.Interval) error
	Close(ctx context.Context, intervalID string, end time.Time) error
	ListDay(ctx context.Context, userID, date string) ([]domain.Interval, error)
	ListRange(ctx context.Context, userID, fromDate, toDate string) ([]domain.Interval, error)
	OpenInterval(ctx context.Context, userID string) (domain.Interval, error)
}
