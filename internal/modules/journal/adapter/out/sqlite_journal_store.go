package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worklog/internal/modules/journal/domain"
	journalout "worklog/internal/modules/journal/port/out"
	apperrors "worklog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteNoteStore struct {
	db *sql.DB
}

func NewSQLiteNoteStore(db *sql.DB) (journalout.NoteStore, error) {
	store := &SQLiteNoteStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS note_fragments (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL,
  date TEXT NOT NULL,
  body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_note_fragments_user_date ON note_fragments (user_id, date);
`
	if _, err := store.db.ExecContext(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("create note_fragments table: %w", err)
	}
	return store, nil
}

func (s *SQLiteNoteStore) AppendFragment(ctx context.Context, userID, date, body string) error {
	const stmt = `INSERT INTO note_fragments (user_id, date, body) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt, userID, date, body); err != nil {
		return fmt.Errorf("append fragment: %w", err)
	}
	return nil
}

func (s *SQLiteNoteStore) GetNote(ctx context.Context, userID, date string) (domain.Note, error) {
	const query = `SELECT body FROM note_fragments WHERE user_id = ? AND date = ? ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return domain.Note{}, fmt.Errorf("load note: %w", err)
	}
	defer rows.Close()

	note := domain.Note{UserID: userID, Date: date}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return domain.Note{}, fmt.Errorf("scan fragment: %w", err)
		}
		note.Fragments = append(note.Fragments, body)
	}
	if err := rows.Err(); err != nil {
		return domain.Note{}, fmt.Errorf("iterate fragments: %w", err)
	}
	return note, nil
}

type SQLiteCaptureStore struct {
	db *sql.DB
}

func NewSQLiteCaptureStore(db *sql.DB) (journalout.CaptureStore, error) {
	store := &SQLiteCaptureStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS capture_windows (
  user_id TEXT NOT NULL,
  channel TEXT NOT NULL,
  expires_at TEXT NOT NULL,
  PRIMARY KEY (user_id, channel)
);
`
	if _, err := store.db.ExecContext(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("create capture_windows table: %w", err)
	}
	return store, nil
}

func (s *SQLiteCaptureStore) Put(ctx context.Context, window domain.CaptureWindow) error {
	const stmt = `
INSERT INTO capture_windows (user_id, channel, expires_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id, channel) DO UPDATE SET expires_at=excluded.expires_at;
`
	_, err := s.db.ExecContext(ctx, stmt, window.UserID, window.Channel, window.ExpiresAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("put capture window: %w", err)
	}
	return nil
}

func (s *SQLiteCaptureStore) Get(ctx context.Context, userID, channel string) (domain.CaptureWindow, error) {
	const query = `SELECT expires_at FROM capture_windows WHERE user_id = ? AND channel = ?`
	var raw string
	err := s.db.QueryRowContext(ctx, query, userID, channel).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CaptureWindow{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.CaptureWindow{}, fmt.Errorf("get capture window: %w", err)
	}
	expires, err := time.Parse(timeLayout, raw)
	if err != nil {
		return domain.CaptureWindow{}, fmt.Errorf("parse expiry: %w", err)
	}
	return domain.CaptureWindow{UserID: userID, Channel: channel, ExpiresAt: expires}, nil
}

func (s *SQLiteCaptureStore) Delete(ctx context.Context, userID, channel string) error {
	const stmt = `DELETE FROM capture_windows WHERE user_id = ? AND channel = ?`
	if _, err := s.db.ExecContext(ctx, stmt, userID, channel); err != nil {
		return fmt.Errorf("delete capture window: %w", err)
	}
	return nil
}

func (s *SQLiteCaptureStore) DeleteExpired(ctx context.Context, now time.Time) error {
	const stmt = `DELETE FROM capture_windows WHERE expires_at <= ?`
	if _, err := s.db.ExecContext(ctx, stmt, now.Format(timeLayout)); err != nil {
		return fmt.Errorf("delete expired windows: %w", err)
	}
	return nil
}
