package out

import (
	"context"
	"encoding/json"
	"fmt"

	notifyin "worklog/internal/modules/notify/port/in"
	"worklog/internal/modules/timeline/dto"
	timelineout "worklog/internal/modules/timeline/port/out"
)

// PluginEncoder hands the layout to the configured render plugin.
type PluginEncoder struct {
	notify notifyin.Usecase
}

func NewPluginEncoder(notify notifyin.Usecase) timelineout.ImageEncoder {
	return &PluginEncoder{notify: notify}
}

func (e *PluginEncoder) Encode(ctx context.Context, layout dto.WeekLayout) ([]byte, error) {
	raw, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return e.notify.RenderImage(ctx, string(raw))
}
