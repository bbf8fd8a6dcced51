package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worklog/internal/modules/journal/domain"
	journalout "worklog/internal/modules/journal/port/out"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/day"
	apperrors "worklog/internal/platform/errors"
)

type JournalService struct {
	clk      clock.Clock
	notes    journalout.NoteStore
	captures journalout.CaptureStore
	ttl      time.Duration
	loc      *time.Location
}

func NewJournalService(clk clock.Clock, notes journalout.NoteStore, captures journalout.CaptureStore, ttl time.Duration, loc *time.Location) *JournalService {
	return &JournalService{clk: clk, notes: notes, captures: captures, ttl: ttl, loc: loc}
}

// Append trims and stores one fragment. Blank input is ignored without
// error.
func (s *JournalService) Append(ctx context.Context, userID, date, body string) (domain.Note, error) {
	body = strings.TrimSpace(body)
	if date == "" {
		date = day.Of(s.clk.Now(), s.loc)
	} else if _, err := day.Parse(date, s.loc); err != nil {
		return domain.Note{}, err
	}
	if body != "" {
		if err := s.notes.AppendFragment(ctx, userID, date, body); err != nil {
			return domain.Note{}, fmt.Errorf("append note: %w", err)
		}
	}
	return s.notes.GetNote(ctx, userID, date)
}

func (s *JournalService) Note(ctx context.Context, userID, date string) (domain.Note, error) {
	if _, err := day.Parse(date, s.loc); err != nil {
		return domain.Note{}, err
	}
	return s.notes.GetNote(ctx, userID, date)
}

func (s *JournalService) Arm(ctx context.Context, userID, channel string) error {
	window := domain.CaptureWindow{
		UserID:    userID,
		Channel:   channel,
		ExpiresAt: s.clk.Now().Add(s.ttl),
	}
	if err := s.captures.Put(ctx, window); err != nil {
		return fmt.Errorf("arm capture window: %w", err)
	}
	return nil
}

// Capture consumes the window for (user, channel) if one is live. The
// window is removed whether it was live or expired.
func (s *JournalService) Capture(ctx context.Context, userID, channel, body string) (domain.Note, bool, error) {
	window, err := s.captures.Get(ctx, userID, channel)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Note{}, false, nil
	}
	if err != nil {
		return domain.Note{}, false, err
	}

	if err := s.captures.Delete(ctx, userID, channel); err != nil {
		return domain.Note{}, false, fmt.Errorf("disarm capture window: %w", err)
	}
	now := s.clk.Now()
	if window.Expired(now) {
		return domain.Note{}, false, nil
	}

	note, err := s.Append(ctx, userID, day.Of(now, s.loc), body)
	if err != nil {
		return domain.Note{}, false, err
	}
	return note, true, nil
}

func (s *JournalService) SweepExpired(ctx context.Context) error {
	return s.captures.DeleteExpired(ctx, s.clk.Now())
}
