package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"worklog/internal/modules/interval/domain"
	"worklog/internal/modules/interval/dto"
	"worklog/internal/modules/interval/service"
	apperrors "worklog/internal/platform/errors"
)

type memoryIntervalStore struct {
	intervals []domain.Interval
}

func (m *memoryIntervalStore) Insert(_ context.Context, interval domain.Interval) error {
	m.intervals = append(m.intervals, interval)
	return nil
}

func (m *memoryIntervalStore) Close(_ context.Context, intervalID string, end time.Time) error {
	for i, iv := range m.intervals {
		if iv.ID == intervalID && !iv.Closed() {
			m.intervals[i].End = end
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *memoryIntervalStore) ListDay(_ context.Context, userID, date string) ([]domain.Interval, error) {
	matched := []domain.Interval{}
	for _, iv := range m.intervals {
		if iv.UserID == userID && iv.Date == date {
			matched = append(matched, iv)
		}
	}
	return matched, nil
}

func (m *memoryIntervalStore) ListRange(_ context.Context, userID, fromDate, toDate string) ([]domain.Interval, error) {
	matched := []domain.Interval{}
	for _, iv := range m.intervals {
		if iv.UserID == userID && iv.Date >= fromDate && iv.Date <= toDate {
			matched = append(matched, iv)
		}
	}
	return matched, nil
}

func (m *memoryIntervalStore) OpenInterval(_ context.Context, userID string) (domain.Interval, error) {
	for _, iv := range m.intervals {
		if iv.UserID == userID && !iv.Closed() {
			return iv, nil
		}
	}
	return domain.Interval{}, apperrors.ErrNotFound
}

type sequenceID struct {
	next int
}

func (s *sequenceID) New() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

func newInteractor(store *memoryIntervalStore) *Interactor {
	svc := service.NewIntervalService(&sequenceID{}, store, time.UTC)
	return NewInteractor(svc, time.UTC)
}

func TestRecordManualStoresEntry(t *testing.T) {
	t.Parallel()

	store := &memoryIntervalStore{}
	interactor := newInteractor(store)

	out, err := interactor.RecordManual(context.Background(), dto.RecordManualInput{
		UserID:   "u1",
		Date:     "2026-03-02",
		Start:    "09:00",
		End:      "10:30",
		Category: "study",
	})
	if err != nil {
		t.Fatalf("RecordManual: %v", err)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", out.Warnings)
	}
	if out.Interval.Source != string(domain.SourceManual) {
		t.Fatalf("source = %q, want manual", out.Interval.Source)
	}
	if got := out.Interval.End.Sub(out.Interval.Start); got != 90*time.Minute {
		t.Fatalf("duration = %v, want 90m", got)
	}
	if len(store.intervals) != 1 {
		t.Fatalf("store holds %d intervals, want 1", len(store.intervals))
	}
}

func TestRecordManualWarnsOnOverlapButStores(t *testing.T) {
	t.Parallel()

	store := &memoryIntervalStore{}
	interactor := newInteractor(store)
	ctx := context.Background()

	if _, err := interactor.RecordManual(ctx, dto.RecordManualInput{
		UserID: "u1", Date: "2026-03-02", Start: "09:00", End: "11:00", Category: "research",
	}); err != nil {
		t.Fatalf("first RecordManual: %v", err)
	}

	out, err := interactor.RecordManual(ctx, dto.RecordManualInput{
		UserID: "u1", Date: "2026-03-02", Start: "10:30", End: "12:00", Category: "study",
	})
	if err != nil {
		t.Fatalf("second RecordManual: %v", err)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(out.Warnings))
	}
	if out.Warnings[0].Category != "research" {
		t.Fatalf("warning names category %q, want research", out.Warnings[0].Category)
	}
	if len(store.intervals) != 2 {
		t.Fatalf("overlapping entry must still be stored, have %d", len(store.intervals))
	}
}

func TestRecordManualAdjacentEntriesDoNotWarn(t *testing.T) {
	t.Parallel()

	store := &memoryIntervalStore{}
	interactor := newInteractor(store)
	ctx := context.Background()

	if _, err := interactor.RecordManual(ctx, dto.RecordManualInput{
		UserID: "u1", Date: "2026-03-02", Start: "09:00", End: "10:00", Category: "study",
	}); err != nil {
		t.Fatalf("first RecordManual: %v", err)
	}
	out, err := interactor.RecordManual(ctx, dto.RecordManualInput{
		UserID: "u1", Date: "2026-03-02", Start: "10:00", End: "11:00", Category: "study",
	})
	if err != nil {
		t.Fatalf("second RecordManual: %v", err)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("back-to-back entries must not warn, got %v", out.Warnings)
	}
}

func TestRecordManualRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	interactor := newInteractor(&memoryIntervalStore{})

	_, err := interactor.RecordManual(context.Background(), dto.RecordManualInput{
		UserID: "u1", Date: "2026-03-02", Start: "11:00", End: "10:00", Category: "study",
	})
	if !errors.Is(err, apperrors.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestOpenIntervalRefusesSecondOpen(t *testing.T) {
	t.Parallel()

	interactor := newInteractor(&memoryIntervalStore{})
	ctx := context.Background()
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if _, err := interactor.OpenInterval(ctx, dto.OpenIntervalInput{UserID: "u1", Category: "study", At: at}); err != nil {
		t.Fatalf("OpenInterval: %v", err)
	}
	_, err := interactor.OpenInterval(ctx, dto.OpenIntervalInput{UserID: "u1", Category: "research", At: at.Add(time.Minute)})
	if !errors.Is(err, apperrors.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
}
