package in

import (
	"context"

	journaldto "worklog/internal/modules/journal/dto"
	journalin "worklog/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Note records text for the user. A live capture window consumes the
// text first; otherwise it is appended directly to today's note.
func (h CLIHandler) Note(ctx context.Context, userID, channel, body string) (journaldto.NoteOutput, error) {
	captured, err := h.usecase.Capture(ctx, journaldto.CaptureInput{UserID: userID, Channel: channel, Body: body})
	if err != nil {
		return journaldto.NoteOutput{}, err
	}
	if captured.Captured {
		return captured.Note, nil
	}
	return h.usecase.AppendNote(ctx, journaldto.AppendNoteInput{UserID: userID, Body: body})
}

func (h CLIHandler) Show(ctx context.Context, userID, date string) (journaldto.NoteOutput, error) {
	return h.usecase.GetNote(ctx, userID, date)
}
