package out

import (
	"context"
	"errors"

	notifydomain "worklog/internal/modules/notify/domain"
	notifydto "worklog/internal/modules/notify/dto"
	notifyin "worklog/internal/modules/notify/port/in"
	reminderout "worklog/internal/modules/reminder/port/out"
)

// PluginNotifier delivers through the notify plugin host, falling back
// when no plugin carries the notify capability.
type PluginNotifier struct {
	notify   notifyin.Usecase
	fallback reminderout.Notifier
}

func NewPluginNotifier(notify notifyin.Usecase, fallback reminderout.Notifier) reminderout.Notifier {
	return &PluginNotifier{notify: notify, fallback: fallback}
}

func (n *PluginNotifier) NotifyUser(ctx context.Context, userID, message string) error {
	err := n.notify.Send(ctx, notifydto.NotifyInput{Kind: "user", Target: userID, Body: message})
	if errors.Is(err, notifydomain.ErrNoPlugin) && n.fallback != nil {
		return n.fallback.NotifyUser(ctx, userID, message)
	}
	return err
}

func (n *PluginNotifier) NotifyChannel(ctx context.Context, channel, message string) error {
	err := n.notify.Send(ctx, notifydto.NotifyInput{Kind: "channel", Target: channel, Body: message})
	if errors.Is(err, notifydomain.ErrNoPlugin) && n.fallback != nil {
		return n.fallback.NotifyChannel(ctx, channel, message)
	}
	return err
}
