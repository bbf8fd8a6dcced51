package in

import (
	"context"

	"worklog/internal/modules/journal/dto"
)

type Usecase interface {
	AppendNote(ctx context.Context, input dto.AppendNoteInput) (dto.NoteOutput, error)
	GetNote(ctx context.Context, userID, date string) (dto.NoteOutput, error)
	// ArmCapture opens the one-shot note window for (user, channel),
	// replacing any previous window for the pair.
	ArmCapture(ctx context.Context, userID, channel string) error
	// Capture appends body to today's note iff an unexpired window exists
	// for (user, channel), disarming it either way once seen.
	Capture(ctx context.Context, input dto.CaptureInput) (dto.CaptureOutput, error)
	// SweepExpired deletes capture windows that have passed their expiry.
	SweepExpired(ctx context.Context) error
}
