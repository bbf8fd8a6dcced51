package in

import (
	"context"

	reportdto "worklog/internal/modules/report/dto"
	reportin "worklog/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Daily(ctx context.Context, userID, date string) (reportdto.DailyReport, error) {
	return h.usecase.Daily(ctx, userID, date)
}

func (h CLIHandler) Weekly(ctx context.Context, userID, anchor string) (reportdto.WeeklyReport, error) {
	return h.usecase.Weekly(ctx, userID, anchor)
}
