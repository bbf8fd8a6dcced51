package in

import (
	"context"
	"time"

	"worklog/internal/modules/interval/dto"
)

type Usecase interface {
	RecordManual(ctx context.Context, input dto.RecordManualInput) (dto.RecordManualOutput, error)
	OpenInterval(ctx context.Context, input dto.OpenIntervalInput) (dto.IntervalOutput, error)
	CloseInterval(ctx context.Context, intervalID string, at time.Time) error
	ListDay(ctx context.Context, userID, date string) ([]dto.IntervalOutput, error)
	ListRange(ctx context.Context, userID, fromDate, toDate string) ([]dto.IntervalOutput, error)
}
