package out

import (
	"context"

	"worklog/internal/modules/timeline/dto"
)

// ImageEncoder turns a week layout into PNG bytes.
type ImageEncoder interface {
	Encode(ctx context.Context, layout dto.WeekLayout) ([]byte, error)
}
