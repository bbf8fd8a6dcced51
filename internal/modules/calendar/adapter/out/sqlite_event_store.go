package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"worklog/internal/modules/calendar/domain"
	calendarout "worklog/internal/modules/calendar/port/out"
	apperrors "worklog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteEventStore struct {
	db *sql.DB
}

func NewSQLiteEventStore(db *sql.DB) (calendarout.EventStore, error) {
	store := &SQLiteEventStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS events (
  id TEXT PRIMARY KEY,
  grade TEXT NOT NULL,
  title TEXT NOT NULL,
  date TEXT NOT NULL,
  start_time TEXT NOT NULL DEFAULT '',
  end_time TEXT NOT NULL DEFAULT '',
  location_type TEXT NOT NULL DEFAULT '',
  location_detail TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL,
  remind_1d_sent INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events (date);
`
	if _, err := store.db.ExecContext(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return store, nil
}

func (s *SQLiteEventStore) Insert(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, grade, title, date, start_time, end_time, location_type, location_detail, created_by, remind_1d_sent)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		event.ID,
		string(event.Grade),
		event.Title,
		event.Date,
		event.StartTime,
		event.EndTime,
		string(event.LocationType),
		event.LocationDetail,
		event.CreatedBy,
		boolToInt(event.Remind1dSent),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *SQLiteEventStore) Get(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `
SELECT id, grade, title, date, start_time, end_time, location_type, location_detail, created_by, remind_1d_sent
FROM events WHERE id = ?;
`
	event, err := scanEvent(s.db.QueryRowContext(ctx, query, eventID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *SQLiteEventStore) Delete(ctx context.Context, eventID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLiteEventStore) ListRange(ctx context.Context, fromDate, toDate string) ([]domain.Event, error) {
	const query = `
SELECT id, grade, title, date, start_time, end_time, location_type, location_detail, created_by, remind_1d_sent
FROM events
WHERE date >= ? AND date <= ?
ORDER BY date, start_time, title;
`
	rows, err := s.db.QueryContext(ctx, query, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (s *SQLiteEventStore) MarkReminded(ctx context.Context, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(eventIDs))
	stmt := fmt.Sprintf(`UPDATE events SET remind_1d_sent = 1 WHERE id IN (%s)`, placeholders[:len(placeholders)-1])
	args := make([]any, len(eventIDs))
	for i, id := range eventIDs {
		args[i] = id
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		event          domain.Event
		grade, locType string
		reminded       int
	)
	err := row.Scan(
		&event.ID,
		&grade,
		&event.Title,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&locType,
		&event.LocationDetail,
		&event.CreatedBy,
		&reminded,
	)
	if err != nil {
		return domain.Event{}, err
	}
	event.Grade = domain.Grade(grade)
	event.LocationType = domain.LocationType(locType)
	event.Remind1dSent = reminded != 0
	return event, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
