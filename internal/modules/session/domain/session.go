package domain

import (
	"fmt"
	"time"

	apperrors "worklog/internal/platform/errors"
)

type State string

const (
	StateWorking State = "working"
	StateOnBreak State = "on_break"
	StateEnded   State = "ended"
)

// Session is one live or archived work session. Idle is the absence of
// a live row, not a state. ResumedAt is when the current working
// interval opened; Worked accumulates closed working time.
type Session struct {
	ID             string
	UserID         string
	IssuerID       string
	ChannelID      string
	State          State
	Category       string
	StartedAt      time.Time
	EndedAt        time.Time
	ResumedAt      time.Time
	BreakStartedAt time.Time
	BreakAlerted   bool
	OpenIntervalID string
	Worked         time.Duration
}

func (s Session) Live() bool {
	return s.State == StateWorking || s.State == StateOnBreak
}

// Authorize restricts transitions to the user who started the session.
func (s Session) Authorize(actorID string) error {
	if actorID != s.IssuerID {
		return fmt.Errorf("session %s belongs to %s: %w", s.ID, s.IssuerID, apperrors.ErrNotAuthorized)
	}
	return nil
}

func (s *Session) BeginBreak(at time.Time) error {
	if s.State != StateWorking {
		return fmt.Errorf("%w: cannot start break from %s", apperrors.ErrInvalidTransition, s.State)
	}
	s.Worked += at.Sub(s.ResumedAt)
	s.State = StateOnBreak
	s.BreakStartedAt = at
	s.BreakAlerted = false
	return nil
}

func (s *Session) ResumeWork(at time.Time) error {
	if s.State != StateOnBreak {
		return fmt.Errorf("%w: cannot resume from %s", apperrors.ErrInvalidTransition, s.State)
	}
	s.State = StateWorking
	s.ResumedAt = at
	s.BreakStartedAt = time.Time{}
	s.BreakAlerted = false
	return nil
}

func (s *Session) End(at time.Time) error {
	switch s.State {
	case StateWorking:
		s.Worked += at.Sub(s.ResumedAt)
	case StateOnBreak:
	default:
		return fmt.Errorf("%w: cannot end from %s", apperrors.ErrInvalidTransition, s.State)
	}
	s.State = StateEnded
	s.EndedAt = at
	s.BreakStartedAt = time.Time{}
	return nil
}

// OnBreakFor reports how long the current break has been running.
func (s Session) OnBreakFor(now time.Time) time.Duration {
	if s.State != StateOnBreak || s.BreakStartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.BreakStartedAt)
}
