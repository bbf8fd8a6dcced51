package in

import (
	"context"

	"worklog/internal/modules/notify/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// Send routes a message through the first enabled plugin with the
	// notify capability; domain.ErrNoPlugin when none is configured.
	Send(ctx context.Context, input dto.NotifyInput) error
	// RenderImage encodes a week layout (the timeline wire JSON) to PNG
	// through the first enabled plugin with the render capability.
	RenderImage(ctx context.Context, layoutJSON string) ([]byte, error)
}
