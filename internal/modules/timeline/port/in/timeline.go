package in

import (
	"context"

	"worklog/internal/modules/timeline/dto"
)

type Usecase interface {
	// BuildWeek lays out the Monday-anchored week containing anchor.
	BuildWeek(ctx context.Context, userID, anchor string) (dto.WeekLayout, error)
	// RenderPNG encodes the layout through the configured image encoder.
	RenderPNG(ctx context.Context, userID, anchor string) ([]byte, error)
}
