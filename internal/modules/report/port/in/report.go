package in

import (
	"context"

	"worklog/internal/modules/report/dto"
)

type Usecase interface {
	Daily(ctx context.Context, userID, date string) (dto.DailyReport, error)
	// Weekly reports the Monday-anchored week containing anchor
	// (YYYY-MM-DD, today when empty).
	Weekly(ctx context.Context, userID, anchor string) (dto.WeeklyReport, error)
}
