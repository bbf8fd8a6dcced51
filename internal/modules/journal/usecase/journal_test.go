package usecase

import (
	"context"
	"testing"
	"time"

	"worklog/internal/modules/journal/domain"
	"worklog/internal/modules/journal/dto"
	"worklog/internal/modules/journal/service"
	apperrors "worklog/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	index  int
}

func (c *fakeClock) Now() time.Time {
	if c.index >= len(c.values) {
		return c.values[len(c.values)-1]
	}
	v := c.values[c.index]
	c.index++
	return v
}

type memoryNoteStore struct {
	fragments map[string][]string
}

func newMemoryNoteStore() *memoryNoteStore {
	return &memoryNoteStore{fragments: map[string][]string{}}
}

func (m *memoryNoteStore) AppendFragment(_ context.Context, userID, date, body string) error {
	key := userID + "/" + date
	m.fragments[key] = append(m.fragments[key], body)
	return nil
}

func (m *memoryNoteStore) GetNote(_ context.Context, userID, date string) (domain.Note, error) {
	return domain.Note{UserID: userID, Date: date, Fragments: m.fragments[userID+"/"+date]}, nil
}

type memoryCaptureStore struct {
	windows map[string]domain.CaptureWindow
}

func newMemoryCaptureStore() *memoryCaptureStore {
	return &memoryCaptureStore{windows: map[string]domain.CaptureWindow{}}
}

func (m *memoryCaptureStore) Put(_ context.Context, w domain.CaptureWindow) error {
	m.windows[w.UserID+"/"+w.Channel] = w
	return nil
}

func (m *memoryCaptureStore) Get(_ context.Context, userID, channel string) (domain.CaptureWindow, error) {
	w, ok := m.windows[userID+"/"+channel]
	if !ok {
		return domain.CaptureWindow{}, apperrors.ErrNotFound
	}
	return w, nil
}

func (m *memoryCaptureStore) Delete(_ context.Context, userID, channel string) error {
	delete(m.windows, userID+"/"+channel)
	return nil
}

func (m *memoryCaptureStore) DeleteExpired(_ context.Context, now time.Time) error {
	for key, w := range m.windows {
		if w.Expired(now) {
			delete(m.windows, key)
		}
	}
	return nil
}

func newJournal(clk *fakeClock) (*Interactor, *memoryCaptureStore) {
	captures := newMemoryCaptureStore()
	svc := service.NewJournalService(clk, newMemoryNoteStore(), captures, 10*time.Minute, time.UTC)
	return NewInteractor(svc), captures
}

func TestAppendNoteKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	interactor, _ := newJournal(&fakeClock{values: []time.Time{base}})
	ctx := context.Background()

	for _, body := range []string{"read chapter 3", "derived the bound", "draft slides"} {
		if _, err := interactor.AppendNote(ctx, dto.AppendNoteInput{UserID: "u1", Date: "2026-03-02", Body: body}); err != nil {
			t.Fatalf("AppendNote(%q): %v", body, err)
		}
	}

	note, err := interactor.GetNote(ctx, "u1", "2026-03-02")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	want := "read chapter 3\nderived the bound\ndraft slides"
	if note.Text != want {
		t.Fatalf("note text = %q, want %q", note.Text, want)
	}
}

func TestAppendNoteIgnoresBlankBody(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	interactor, _ := newJournal(&fakeClock{values: []time.Time{base}})

	note, err := interactor.AppendNote(context.Background(), dto.AppendNoteInput{UserID: "u1", Date: "2026-03-02", Body: "   "})
	if err != nil {
		t.Fatalf("AppendNote: %v", err)
	}
	if len(note.Fragments) != 0 {
		t.Fatalf("blank body must not be stored, got %v", note.Fragments)
	}
}

func TestCaptureIsOneShot(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		base,                      // arm, expiry = 09:10
		base.Add(2 * time.Minute), // first capture
	}}
	interactor, _ := newJournal(clk)
	ctx := context.Background()

	if err := interactor.ArmCapture(ctx, "u1", "lab"); err != nil {
		t.Fatalf("ArmCapture: %v", err)
	}

	first, err := interactor.Capture(ctx, dto.CaptureInput{UserID: "u1", Channel: "lab", Body: "wrapped up proofs"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !first.Captured {
		t.Fatalf("live window must capture")
	}
	if first.Note.Text != "wrapped up proofs" {
		t.Fatalf("captured note = %q", first.Note.Text)
	}

	second, err := interactor.Capture(ctx, dto.CaptureInput{UserID: "u1", Channel: "lab", Body: "extra"})
	if err != nil {
		t.Fatalf("second Capture: %v", err)
	}
	if second.Captured {
		t.Fatalf("window is one-shot; second capture must be a no-op")
	}
}

func TestCaptureExpiredWindowDoesNothing(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		base,                       // arm, expiry = 09:10
		base.Add(10 * time.Minute), // capture attempt at the expiry boundary
	}}
	interactor, captures := newJournal(clk)
	ctx := context.Background()

	if err := interactor.ArmCapture(ctx, "u1", "lab"); err != nil {
		t.Fatalf("ArmCapture: %v", err)
	}
	out, err := interactor.Capture(ctx, dto.CaptureInput{UserID: "u1", Channel: "lab", Body: "too late"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if out.Captured {
		t.Fatalf("expired window must not capture")
	}
	if len(captures.windows) != 0 {
		t.Fatalf("expired window must be removed on sight")
	}
}

func TestSweepExpiredRemovesOnlyExpired(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		base,                       // arm u1
		base.Add(8 * time.Minute),  // arm u2, expiry = 09:18
		base.Add(15 * time.Minute), // sweep
	}}
	interactor, captures := newJournal(clk)
	ctx := context.Background()

	if err := interactor.ArmCapture(ctx, "u1", "lab"); err != nil {
		t.Fatalf("ArmCapture u1: %v", err)
	}
	if err := interactor.ArmCapture(ctx, "u2", "lab"); err != nil {
		t.Fatalf("ArmCapture u2: %v", err)
	}
	if err := interactor.SweepExpired(ctx); err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if _, ok := captures.windows["u1/lab"]; ok {
		t.Fatalf("u1 window should have been swept")
	}
	if _, ok := captures.windows["u2/lab"]; !ok {
		t.Fatalf("u2 window is still live and must survive the sweep")
	}
}
