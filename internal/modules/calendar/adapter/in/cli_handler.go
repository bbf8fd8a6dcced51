package in

import (
	"context"

	calendardto "worklog/internal/modules/calendar/dto"
	calendarin "worklog/internal/modules/calendar/port/in"
)

type CLIHandler struct {
	usecase calendarin.Usecase
}

func NewCLIHandler(usecase calendarin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, input calendardto.RegisterEventInput) (calendardto.EventOutput, error) {
	return h.usecase.Register(ctx, input)
}

func (h CLIHandler) List(ctx context.Context, grade, from string, days int) ([]calendardto.EventOutput, error) {
	return h.usecase.List(ctx, calendardto.ListEventsInput{Grade: grade, From: from, Days: days})
}

func (h CLIHandler) Remove(ctx context.Context, eventID, userID string) error {
	return h.usecase.Remove(ctx, eventID, userID)
}
