package out

import (
	"context"
	"time"

	"worklog/internal/modules/journal/domain"
)

type NoteStore interface {
	AppendFragment(ctx context.Context, userID, date, body string) error
	GetNote(ctx context.Context, userID, date string) (domain.Note, error)
}

type CaptureStore interface {
	// Put replaces any existing window for (user, channel).
	Put(ctx context.Context, window domain.CaptureWindow) error
	// Get returns apperrors.ErrNotFound when no window exists.
	Get(ctx context.Context, userID, channel string) (domain.CaptureWindow, error)
	Delete(ctx context.Context, userID, channel string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
