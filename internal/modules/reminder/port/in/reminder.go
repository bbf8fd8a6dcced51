package in

import "context"

type Usecase interface {
	// Reconcile aligns the in-memory timer set with the store: arms a
	// break-overrun timer per unalerted on-break session, cancels timers
	// whose session left the break, and sweeps expired note windows.
	Reconcile(ctx context.Context) error
	// RunDailyEventScan posts tomorrow's calendar digests, one channel
	// message per grade, and marks the events as reminded.
	RunDailyEventScan(ctx context.Context, date string) error
	// Stop cancels every armed timer.
	Stop()
}
