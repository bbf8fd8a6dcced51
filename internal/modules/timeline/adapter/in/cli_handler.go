package in

import (
	"context"

	timelinedto "worklog/internal/modules/timeline/dto"
	timelinein "worklog/internal/modules/timeline/port/in"
)

type CLIHandler struct {
	usecase timelinein.Usecase
}

func NewCLIHandler(usecase timelinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Week(ctx context.Context, userID, anchor string) (timelinedto.WeekLayout, error) {
	return h.usecase.BuildWeek(ctx, userID, anchor)
}

func (h CLIHandler) PNG(ctx context.Context, userID, anchor string) ([]byte, error) {
	return h.usecase.RenderPNG(ctx, userID, anchor)
}
