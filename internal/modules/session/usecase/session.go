package usecase

import (
	"context"
	"sync"

	intervaldto "worklog/internal/modules/interval/dto"
	intervalin "worklog/internal/modules/interval/port/in"
	journalin "worklog/internal/modules/journal/port/in"
	reportin "worklog/internal/modules/report/port/in"
	"worklog/internal/modules/session/domain"
	"worklog/internal/modules/session/dto"
	"worklog/internal/modules/session/service"
	apperrors "worklog/internal/platform/errors"
)

// userLocks serializes transitions per user so concurrent commands
// cannot interleave a close and a reopen.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = map[string]*sync.Mutex{}
	}
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

type Interactor struct {
	svc       *service.SessionService
	intervals intervalin.Usecase
	journal   journalin.Usecase
	reports   reportin.Usecase
	locks     userLocks
}

func NewInteractor(svc *service.SessionService, intervals intervalin.Usecase, journal journalin.Usecase, reports reportin.Usecase) *Interactor {
	return &Interactor{svc: svc, intervals: intervals, journal: journal, reports: reports}
}

func (i *Interactor) StartWork(ctx context.Context, input dto.StartWorkInput) (dto.SessionOutput, error) {
	lock := i.locks.get(input.UserID)
	lock.Lock()
	defer lock.Unlock()

	live, err := i.svc.HasLive(ctx, input.UserID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if live {
		return dto.SessionOutput{}, apperrors.ErrAlreadyActive
	}

	now := i.svc.Now()
	interval, err := i.intervals.OpenInterval(ctx, intervaldto.OpenIntervalInput{
		UserID:   input.UserID,
		Category: input.Category,
		At:       now,
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	session, err := i.svc.Start(ctx, input.UserID, input.UserID, input.ChannelID, interval.Category, interval.ID, now)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) StartBreak(ctx context.Context, userID, actorID string) (dto.SessionOutput, error) {
	lock := i.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := i.svc.Live(ctx, userID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if err := session.Authorize(actorID); err != nil {
		return dto.SessionOutput{}, err
	}

	now := i.svc.Now()
	if err := session.BeginBreak(now); err != nil {
		return dto.SessionOutput{}, err
	}
	if err := i.intervals.CloseInterval(ctx, session.OpenIntervalID, now); err != nil {
		return dto.SessionOutput{}, err
	}
	interval, err := i.intervals.OpenInterval(ctx, intervaldto.OpenIntervalInput{
		UserID:   userID,
		Category: "break",
		At:       now,
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	session.OpenIntervalID = interval.ID
	if err := i.svc.Save(ctx, session); err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) EndBreak(ctx context.Context, userID, actorID string) (dto.SessionOutput, error) {
	lock := i.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := i.svc.Live(ctx, userID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if err := session.Authorize(actorID); err != nil {
		return dto.SessionOutput{}, err
	}

	now := i.svc.Now()
	if err := session.ResumeWork(now); err != nil {
		return dto.SessionOutput{}, err
	}
	if err := i.intervals.CloseInterval(ctx, session.OpenIntervalID, now); err != nil {
		return dto.SessionOutput{}, err
	}
	interval, err := i.intervals.OpenInterval(ctx, intervaldto.OpenIntervalInput{
		UserID:   userID,
		Category: session.Category,
		At:       now,
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	session.OpenIntervalID = interval.ID
	if err := i.svc.Save(ctx, session); err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) EndWork(ctx context.Context, userID, actorID string) (dto.EndWorkOutput, error) {
	lock := i.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := i.svc.Live(ctx, userID)
	if err != nil {
		return dto.EndWorkOutput{}, err
	}
	if err := session.Authorize(actorID); err != nil {
		return dto.EndWorkOutput{}, err
	}

	now := i.svc.Now()
	if err := session.End(now); err != nil {
		return dto.EndWorkOutput{}, err
	}
	if err := i.intervals.CloseInterval(ctx, session.OpenIntervalID, now); err != nil {
		return dto.EndWorkOutput{}, err
	}
	session.OpenIntervalID = ""
	if err := i.svc.Save(ctx, session); err != nil {
		return dto.EndWorkOutput{}, err
	}
	if err := i.journal.ArmCapture(ctx, userID, session.ChannelID); err != nil {
		return dto.EndWorkOutput{}, err
	}

	out := dto.EndWorkOutput{SessionID: session.ID, Worked: session.Worked}
	if i.reports != nil {
		week, err := i.reports.Weekly(ctx, userID, "")
		if err != nil {
			return dto.EndWorkOutput{}, err
		}
		out.WeekWorked = week.Worked
	}
	return out, nil
}

func (i *Interactor) Status(ctx context.Context, userID string) (dto.SessionOutput, error) {
	session, err := i.svc.Live(ctx, userID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) ListOnBreak(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.SessionOutput{}
	for _, session := range sessions {
		if session.State == domain.StateOnBreak {
			out = append(out, toOutput(session))
		}
	}
	return out, nil
}

func (i *Interactor) MarkBreakAlerted(ctx context.Context, sessionID string) error {
	return i.svc.MarkBreakAlerted(ctx, sessionID)
}

func (i *Interactor) CloseStale(ctx context.Context) (int, error) {
	sessions, err := i.svc.ListLive(ctx)
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, session := range sessions {
		lock := i.locks.get(session.UserID)
		lock.Lock()
		now := i.svc.Now()
		if err := session.End(now); err != nil {
			lock.Unlock()
			return closed, err
		}
		if session.OpenIntervalID != "" {
			if err := i.intervals.CloseInterval(ctx, session.OpenIntervalID, now); err != nil {
				lock.Unlock()
				return closed, err
			}
			session.OpenIntervalID = ""
		}
		if err := i.svc.Save(ctx, session); err != nil {
			lock.Unlock()
			return closed, err
		}
		lock.Unlock()
		closed++
	}
	return closed, nil
}

func toOutput(session domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:             session.ID,
		UserID:         session.UserID,
		IssuerID:       session.IssuerID,
		ChannelID:      session.ChannelID,
		State:          string(session.State),
		Category:       session.Category,
		StartedAt:      session.StartedAt,
		BreakStartedAt: session.BreakStartedAt,
		BreakAlerted:   session.BreakAlerted,
		OpenIntervalID: session.OpenIntervalID,
		Worked:         session.Worked,
	}
}
