package usecase

import (
	"context"
	"time"

	calendarin "worklog/internal/modules/calendar/port/in"
	journalin "worklog/internal/modules/journal/port/in"
	"worklog/internal/modules/reminder/domain"
	reminderout "worklog/internal/modules/reminder/port/out"
	"worklog/internal/modules/reminder/service"
	sessiondto "worklog/internal/modules/session/dto"
	sessionin "worklog/internal/modules/session/port/in"
	"worklog/internal/platform/clock"

	hclog "github.com/hashicorp/go-hclog"
)

type Interactor struct {
	clk        clock.Clock
	timers     *service.TimerSet
	sessions   sessionin.Usecase
	calendar   calendarin.Usecase
	journal    journalin.Usecase
	notifier   reminderout.Notifier
	logger     hclog.Logger
	breakAfter time.Duration
	channel    string
}

func NewInteractor(
	clk clock.Clock,
	timers *service.TimerSet,
	sessions sessionin.Usecase,
	calendar calendarin.Usecase,
	journal journalin.Usecase,
	notifier reminderout.Notifier,
	logger hclog.Logger,
	breakAfter time.Duration,
	channel string,
) *Interactor {
	return &Interactor{
		clk:        clk,
		timers:     timers,
		sessions:   sessions,
		calendar:   calendar,
		journal:    journal,
		notifier:   notifier,
		logger:     logger,
		breakAfter: breakAfter,
		channel:    channel,
	}
}

func (i *Interactor) Reconcile(ctx context.Context) error {
	onBreak, err := i.sessions.ListOnBreak(ctx)
	if err != nil {
		return err
	}

	wanted := map[domain.Key]struct{}{}
	for _, session := range onBreak {
		if session.BreakAlerted {
			continue
		}
		key := domain.BreakKey(session.UserID)
		wanted[key] = struct{}{}
		deadline := session.BreakStartedAt.Add(i.breakAfter)
		// A timer armed for an earlier break carries a different
		// deadline; re-arming replaces it.
		if at, ok := i.timers.ArmedAt(key); ok && at.Equal(deadline) {
			continue
		}
		i.timers.Arm(key, deadline, i.breakAlert(session))
	}

	// Timers whose session resumed, ended, or was already alerted.
	for _, key := range i.timers.Keys() {
		if key.Purpose != domain.PurposeBreak {
			continue
		}
		if _, ok := wanted[key]; !ok {
			i.timers.Cancel(key)
		}
	}

	if err := i.journal.SweepExpired(ctx); err != nil {
		i.logger.Warn("sweep expired note windows", "error", err)
	}
	return nil
}

// breakAlert delivers the single overrun DM and flags the session so a
// restart never re-notifies the same break.
func (i *Interactor) breakAlert(session sessiondto.SessionOutput) func() {
	return func() {
		ctx := context.Background()
		onBreakFor := i.clk.Now().Sub(session.BreakStartedAt)
		if err := i.notifier.NotifyUser(ctx, session.UserID, domain.BreakMessage(onBreakFor)); err != nil {
			i.logger.Warn("deliver break alert", "user", session.UserID, "error", err)
			return
		}
		if err := i.sessions.MarkBreakAlerted(ctx, session.ID); err != nil {
			i.logger.Warn("mark break alerted", "session", session.ID, "error", err)
		}
	}
}

func (i *Interactor) RunDailyEventScan(ctx context.Context, date string) error {
	batches, err := i.calendar.DueTomorrow(ctx, date)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		titles := make([]string, 0, len(batch.Events))
		ids := make([]string, 0, len(batch.Events))
		for _, event := range batch.Events {
			titles = append(titles, event.Title)
			ids = append(ids, event.ID)
		}
		if err := i.notifier.NotifyChannel(ctx, i.channel, domain.EventDigest(batch.Grade, titles)); err != nil {
			i.logger.Warn("deliver event digest", "grade", batch.Grade, "error", err)
			continue
		}
		if err := i.calendar.MarkReminded(ctx, ids); err != nil {
			i.logger.Warn("mark events reminded", "grade", batch.Grade, "error", err)
		}
	}
	return nil
}

func (i *Interactor) Stop() {
	i.timers.CancelAll()
}
