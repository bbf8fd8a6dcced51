package out

import (
	"context"

	reminderout "worklog/internal/modules/reminder/port/out"

	hclog "github.com/hashicorp/go-hclog"
)

// LogNotifier writes reminders to the daemon log. Used when no notify
// plugin is configured.
type LogNotifier struct {
	logger hclog.Logger
}

func NewLogNotifier(logger hclog.Logger) reminderout.Notifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) NotifyUser(_ context.Context, userID, message string) error {
	n.logger.Info("user reminder", "user", userID, "message", message)
	return nil
}

func (n *LogNotifier) NotifyChannel(_ context.Context, channel, message string) error {
	n.logger.Info("channel reminder", "channel", channel, "message", message)
	return nil
}
