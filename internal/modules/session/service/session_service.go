package service

import (
	"context"
	"errors"
	"time"

	"worklog/internal/modules/session/domain"
	sessionout "worklog/internal/modules/session/port/out"
	"worklog/internal/platform/clock"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/id"
)

type SessionService struct {
	clk   clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clk clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clk: clk, idGen: idGen, store: store}
}

func (s *SessionService) Now() time.Time {
	return s.clk.Now()
}

// Start creates the live session row. The caller opens the working
// interval first and passes its id.
func (s *SessionService) Start(ctx context.Context, userID, issuerID, channelID, category, openIntervalID string, at time.Time) (domain.Session, error) {
	session := domain.Session{
		ID:             s.idGen.New(),
		UserID:         userID,
		IssuerID:       issuerID,
		ChannelID:      channelID,
		State:          domain.StateWorking,
		Category:       category,
		StartedAt:      at,
		ResumedAt:      at,
		OpenIntervalID: openIntervalID,
	}
	if err := s.store.Insert(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Live loads the user's live session, ErrNoActiveSession when idle.
func (s *SessionService) Live(ctx context.Context, userID string) (domain.Session, error) {
	session, err := s.store.Live(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) HasLive(ctx context.Context, userID string) (bool, error) {
	_, err := s.store.Live(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionService) Save(ctx context.Context, session domain.Session) error {
	return s.store.Update(ctx, session)
}

func (s *SessionService) ListLive(ctx context.Context) ([]domain.Session, error) {
	return s.store.ListLive(ctx)
}

func (s *SessionService) MarkBreakAlerted(ctx context.Context, sessionID string) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.State != domain.StateOnBreak {
		return nil
	}
	session.BreakAlerted = true
	return s.store.Update(ctx, session)
}
