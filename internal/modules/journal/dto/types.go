package dto

type NoteOutput struct {
	UserID    string
	Date      string
	Fragments []string
	Text      string
}

type AppendNoteInput struct {
	UserID string
	Date   string // YYYY-MM-DD, today when empty
	Body   string
}

type CaptureInput struct {
	UserID  string
	Channel string
	Body    string
}

type CaptureOutput struct {
	Captured bool
	Note     NoteOutput
}
