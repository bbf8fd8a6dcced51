package in

import (
	"context"

	"worklog/internal/modules/session/dto"
)

type Usecase interface {
	// StartWork opens a session and its first working interval. The
	// caller becomes the session's issuer.
	StartWork(ctx context.Context, input dto.StartWorkInput) (dto.SessionOutput, error)
	StartBreak(ctx context.Context, userID, actorID string) (dto.SessionOutput, error)
	EndBreak(ctx context.Context, userID, actorID string) (dto.SessionOutput, error)
	// EndWork closes the session from working or on_break and arms the
	// note-capture window for the session's channel.
	EndWork(ctx context.Context, userID, actorID string) (dto.EndWorkOutput, error)
	// Status returns apperrors.ErrNoActiveSession when the user is idle.
	Status(ctx context.Context, userID string) (dto.SessionOutput, error)
	// ListOnBreak feeds the break-overrun scheduler.
	ListOnBreak(ctx context.Context) ([]dto.SessionOutput, error)
	MarkBreakAlerted(ctx context.Context, sessionID string) error
	// CloseStale ends every live session, closing open intervals. Used
	// at daemon boot; returns how many sessions were closed.
	CloseStale(ctx context.Context) (int, error)
}
