package in

import (
	"context"

	intervaldto "worklog/internal/modules/interval/dto"
	intervalin "worklog/internal/modules/interval/port/in"
)

type CLIHandler struct {
	usecase intervalin.Usecase
}

func NewCLIHandler(usecase intervalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) RecordManual(ctx context.Context, userID, date, start, end, category string) (intervaldto.RecordManualOutput, error) {
	return h.usecase.RecordManual(ctx, intervaldto.RecordManualInput{
		UserID:   userID,
		Date:     date,
		Start:    start,
		End:      end,
		Category: category,
	})
}

func (h CLIHandler) ListDay(ctx context.Context, userID, date string) ([]intervaldto.IntervalOutput, error) {
	return h.usecase.ListDay(ctx, userID, date)
}

func (h CLIHandler) ListRange(ctx context.Context, userID, fromDate, toDate string) ([]intervaldto.IntervalOutput, error) {
	return h.usecase.ListRange(ctx, userID, fromDate, toDate)
}
