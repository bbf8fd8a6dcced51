package usecase

import (
	"context"

	"worklog/internal/modules/journal/domain"
	"worklog/internal/modules/journal/dto"
	"worklog/internal/modules/journal/service"
)

type Interactor struct {
	journal *service.JournalService
}

func NewInteractor(journal *service.JournalService) *Interactor {
	return &Interactor{journal: journal}
}

func (i *Interactor) AppendNote(ctx context.Context, input dto.AppendNoteInput) (dto.NoteOutput, error) {
	note, err := i.journal.Append(ctx, input.UserID, input.Date, input.Body)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) GetNote(ctx context.Context, userID, date string) (dto.NoteOutput, error) {
	note, err := i.journal.Note(ctx, userID, date)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) ArmCapture(ctx context.Context, userID, channel string) error {
	return i.journal.Arm(ctx, userID, channel)
}

func (i *Interactor) Capture(ctx context.Context, input dto.CaptureInput) (dto.CaptureOutput, error) {
	note, captured, err := i.journal.Capture(ctx, input.UserID, input.Channel, input.Body)
	if err != nil {
		return dto.CaptureOutput{}, err
	}
	if !captured {
		return dto.CaptureOutput{}, nil
	}
	return dto.CaptureOutput{Captured: true, Note: toOutput(note)}, nil
}

func (i *Interactor) SweepExpired(ctx context.Context) error {
	return i.journal.SweepExpired(ctx)
}

func toOutput(note domain.Note) dto.NoteOutput {
	return dto.NoteOutput{
		UserID:    note.UserID,
		Date:      note.Date,
		Fragments: note.Fragments,
		Text:      note.Text(),
	}
}
