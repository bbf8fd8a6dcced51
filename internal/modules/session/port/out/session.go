package out

import (
	"context"

	"worklog/internal/modules/session/domain"
)

type SessionStore interface {
	Insert(ctx context.Context, session domain.Session) error
	Update(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	// Live returns apperrors.ErrNotFound when the user has no live
	// session.
	Live(ctx context.Context, userID string) (domain.Session, error)
	ListLive(ctx context.Context) ([]domain.Session, error)
}
