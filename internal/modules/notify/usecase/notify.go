package usecase

import (
	"context"

	"worklog/internal/modules/notify/domain"
	"worklog/internal/modules/notify/dto"
	notifyin "worklog/internal/modules/notify/port/in"
	"worklog/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Send(ctx context.Context, input dto.NotifyInput) error {
	return i.svc.Send(ctx, domain.Message{
		Kind:   domain.TargetKind(input.Kind),
		Target: input.Target,
		Body:   input.Body,
	})
}

func (i *Interactor) RenderImage(ctx context.Context, layoutJSON string) ([]byte, error) {
	return i.svc.Render(ctx, layoutJSON)
}
