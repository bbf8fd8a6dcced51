package out

import "context"

// Notifier delivers reminders. Callers treat failures as non-fatal.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, message string) error
	NotifyChannel(ctx context.Context, channel, message string) error
}
