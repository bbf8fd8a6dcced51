package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"worklog/internal/modules/calendar/domain"
	"worklog/internal/modules/calendar/dto"
	"worklog/internal/modules/calendar/service"
	apperrors "worklog/internal/platform/errors"
)

type memoryEventStore struct {
	events map[string]domain.Event
}

func newMemoryEventStore() *memoryEventStore {
	return &memoryEventStore{events: map[string]domain.Event{}}
}

func (m *memoryEventStore) Insert(_ context.Context, event domain.Event) error {
	m.events[event.ID] = event
	return nil
}

func (m *memoryEventStore) Get(_ context.Context, eventID string) (domain.Event, error) {
	event, ok := m.events[eventID]
	if !ok {
		return domain.Event{}, apperrors.ErrNotFound
	}
	return event, nil
}

func (m *memoryEventStore) Delete(_ context.Context, eventID string) error {
	if _, ok := m.events[eventID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.events, eventID)
	return nil
}

func (m *memoryEventStore) ListRange(_ context.Context, fromDate, toDate string) ([]domain.Event, error) {
	matched := []domain.Event{}
	for _, e := range m.events {
		if e.Date >= fromDate && e.Date <= toDate {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (m *memoryEventStore) MarkReminded(_ context.Context, eventIDs []string) error {
	for _, id := range eventIDs {
		e := m.events[id]
		e.Remind1dSent = true
		m.events[id] = e
	}
	return nil
}

type sequenceID struct {
	next int
}

func (s *sequenceID) New() string {
	s.next++
	return fmt.Sprintf("ev-%d", s.next)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newCalendar() (*Interactor, *memoryEventStore) {
	store := newMemoryEventStore()
	clk := fixedClock{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	return NewInteractor(service.NewCalendarService(clk, &sequenceID{}, store, time.UTC)), store
}

func register(t *testing.T, interactor *Interactor, grade, title, date string) dto.EventOutput {
	t.Helper()
	event, err := interactor.Register(context.Background(), dto.RegisterEventInput{
		Grade:     grade,
		Title:     title,
		Date:      date,
		CreatedBy: "organizer",
	})
	if err != nil {
		t.Fatalf("Register(%s %s): %v", grade, title, err)
	}
	return event
}

func TestRegisterValidatesFormat(t *testing.T) {
	t.Parallel()

	interactor, _ := newCalendar()
	ctx := context.Background()

	cases := []dto.RegisterEventInput{
		{Grade: "B5", Title: "seminar", Date: "2026-03-03", CreatedBy: "u1"},
		{Grade: "B4", Title: "", Date: "2026-03-03", CreatedBy: "u1"},
		{Grade: "B4", Title: "seminar", Date: "03/03", CreatedBy: "u1"},
		{Grade: "B4", Title: "seminar", Date: "2026-03-03", StartTime: "25:00", CreatedBy: "u1"},
		{Grade: "B4", Title: "seminar", Date: "2026-03-03", StartTime: "10:00", EndTime: "09:00", CreatedBy: "u1"},
		{Grade: "B4", Title: "seminar", Date: "2026-03-03", EndTime: "10:00", CreatedBy: "u1"},
		{Grade: "B4", Title: "seminar", Date: "2026-03-03", LocationType: "moon", CreatedBy: "u1"},
	}
	for _, input := range cases {
		if _, err := interactor.Register(ctx, input); !errors.Is(err, apperrors.ErrFormat) {
			t.Fatalf("Register(%+v): want format error, got %v", input, err)
		}
	}
}

func TestRemoveIssuerOnly(t *testing.T) {
	t.Parallel()

	interactor, store := newCalendar()
	ctx := context.Background()
	event := register(t, interactor, "M", "progress report", "2026-03-05")

	if err := interactor.Remove(ctx, event.ID, "someone-else"); !errors.Is(err, apperrors.ErrNotAuthorized) {
		t.Fatalf("non-issuer removal: want ErrNotAuthorized, got %v", err)
	}
	if _, ok := store.events[event.ID]; !ok {
		t.Fatalf("rejected removal must not delete the event")
	}

	if err := interactor.Remove(ctx, event.ID, "organizer"); err != nil {
		t.Fatalf("issuer removal: %v", err)
	}
	if _, ok := store.events[event.ID]; ok {
		t.Fatalf("issuer removal must delete the event")
	}
}

func TestListFoldsAllGradeIn(t *testing.T) {
	t.Parallel()

	interactor, _ := newCalendar()
	register(t, interactor, "B4", "b4 seminar", "2026-03-03")
	register(t, interactor, "ALL", "lab cleanup", "2026-03-04")
	register(t, interactor, "D", "defense", "2026-03-04")

	events, err := interactor.List(context.Background(), dto.ListEventsInput{Grade: "B4", From: "2026-03-02", Days: 7})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("B4 listing = %d events, want b4 seminar + lab cleanup", len(events))
	}
}

func TestDueTomorrowGroupsByGradeWithAllFolded(t *testing.T) {
	t.Parallel()

	interactor, _ := newCalendar()
	register(t, interactor, "B4", "b4 seminar", "2026-03-03")
	register(t, interactor, "ALL", "lab cleanup", "2026-03-03")
	register(t, interactor, "M", "too far out", "2026-03-10")

	batches, err := interactor.DueTomorrow(context.Background(), "2026-03-02")
	if err != nil {
		t.Fatalf("DueTomorrow: %v", err)
	}

	byGrade := map[string]int{}
	for _, b := range batches {
		byGrade[b.Grade] = len(b.Events)
	}
	if byGrade["B4"] != 2 {
		t.Fatalf("B4 batch = %d events, want seminar + ALL event", byGrade["B4"])
	}
	if byGrade["D"] != 1 {
		t.Fatalf("D batch = %d events, want the ALL event alone", byGrade["D"])
	}
	if _, ok := byGrade["M"]; !ok || byGrade["M"] != 1 {
		t.Fatalf("M batch must carry the ALL event only, got %d", byGrade["M"])
	}
}

func TestDueTomorrowSkipsReminded(t *testing.T) {
	t.Parallel()

	interactor, _ := newCalendar()
	ctx := context.Background()
	event := register(t, interactor, "B4", "b4 seminar", "2026-03-03")

	if err := interactor.MarkReminded(ctx, []string{event.ID}); err != nil {
		t.Fatalf("MarkReminded: %v", err)
	}
	batches, err := interactor.DueTomorrow(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("DueTomorrow: %v", err)
	}
	if len(batches) != 0 {
		t.Fatalf("reminded events must not be batched again, got %v", batches)
	}
}
