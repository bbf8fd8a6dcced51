package in

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	remin "worklog/internal/modules/reminder/port/in"
	sessionin "worklog/internal/modules/session/port/in"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/day"
)

// Daemon is the foreground reminder loop. It reconciles timers against
// the store every poll interval and posts the calendar digest once per
// local day when the scan time passes.
type Daemon struct {
	reminders remin.Usecase
	sessions  sessionin.Usecase
	clk       clock.Clock
	logger    hclog.Logger

	location     *time.Location
	pollInterval time.Duration
	scanAt       time.Duration
	lastScanDate string
}

func NewDaemon(
	reminders remin.Usecase,
	sessions sessionin.Usecase,
	clk clock.Clock,
	logger hclog.Logger,
	location *time.Location,
	pollInterval time.Duration,
	scanAt string,
) (*Daemon, error) {
	offset, err := day.Clock(scanAt)
	if err != nil {
		return nil, err
	}
	return &Daemon{
		reminders:    reminders,
		sessions:     sessions,
		clk:          clk,
		logger:       logger.Named("daemon"),
		location:     location,
		pollInterval: pollInterval,
		scanAt:       offset,
	}, nil
}

// Run blocks until ctx is cancelled. Sessions left live by a previous
// process are closed before the first tick.
func (d *Daemon) Run(ctx context.Context) error {
	closed, err := d.sessions.CloseStale(ctx)
	if err != nil {
		return err
	}
	if closed > 0 {
		d.logger.Info("closed stale sessions", "count", closed)
	}

	// A restart after the scan time must not repost digests already
	// sent by the previous process. A start before it leaves today's
	// scan pending.
	now := d.clk.Now().In(d.location)
	if !now.Before(d.scanInstant(now)) {
		d.lastScanDate = day.Of(now, d.location)
	}

	d.tick(ctx)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.reminders.Stop()
			d.logger.Info("daemon stopped")
			return nil
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Daemon) tick(ctx context.Context) {
	if err := d.reminders.Reconcile(ctx); err != nil {
		d.logger.Error("reconcile failed", "error", err)
	}
	d.maybeScan(ctx)
}

func (d *Daemon) maybeScan(ctx context.Context) {
	now := d.clk.Now().In(d.location)
	date := day.Of(now, d.location)
	if date == d.lastScanDate {
		return
	}
	if now.Before(d.scanInstant(now)) {
		return
	}
	if err := d.reminders.RunDailyEventScan(ctx, date); err != nil {
		d.logger.Error("event scan failed", "date", date, "error", err)
		return
	}
	d.lastScanDate = date
}

// scanInstant is today's scan time in the configured location.
func (d *Daemon) scanInstant(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.location)
	return midnight.Add(d.scanAt)
}
