package in

import (
	"context"

	notifydto "worklog/internal/modules/notify/dto"
	notifyin "worklog/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]notifydto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]notifydto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
