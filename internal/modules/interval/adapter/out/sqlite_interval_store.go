package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worklog/internal/modules/interval/domain"
	intervalout "worklog/internal/modules/interval/port/out"
	apperrors "worklog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteIntervalStore struct {
	db *sql.DB
}

func NewSQLiteIntervalStore(db *sql.DB) (intervalout.IntervalStore, error) {
	store := &SQLiteIntervalStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteIntervalStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS intervals (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  date TEXT NOT NULL,
  start_at TEXT NOT NULL,
  end_at TEXT,
  category TEXT NOT NULL,
  source TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_intervals_user_date ON intervals (user_id, date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create intervals table: %w", err)
	}
	return nil
}

func (s *SQLiteIntervalStore) Insert(ctx context.Context, interval domain.Interval) error {
	const stmt = `
INSERT INTO intervals (id, user_id, date, start_at, end_at, category, source)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	var end any
	if interval.Closed() {
		end = interval.End.Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, stmt,
		interval.ID,
		interval.UserID,
		interval.Date,
		interval.Start.Format(timeLayout),
		end,
		string(interval.Category),
		string(interval.Source),
	)
	if err != nil {
		return fmt.Errorf("insert interval: %w", err)
	}
	return nil
}

func (s *SQLiteIntervalStore) Close(ctx context.Context, intervalID string, end time.Time) error {
	const stmt = `UPDATE intervals SET end_at = ? WHERE id = ? AND end_at IS NULL`
	result, err := s.db.ExecContext(ctx, stmt, end.Format(timeLayout), intervalID)
	if err != nil {
		return fmt.Errorf("close interval: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close interval: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("close interval %s: %w", intervalID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLiteIntervalStore) ListDay(ctx context.Context, userID, date string) ([]domain.Interval, error) {
	const query = `
SELECT id, user_id, date, start_at, end_at, category, source
FROM intervals
WHERE user_id = ? AND date = ?
ORDER BY start_at;
`
	rows, err := s.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list day intervals: %w", err)
	}
	defer rows.Close()
	return scanIntervals(rows)
}

func (s *SQLiteIntervalStore) ListRange(ctx context.Context, userID, fromDate, toDate string) ([]domain.Interval, error) {
	const query = `
SELECT id, user_id, date, start_at, end_at, category, source
FROM intervals
WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date, start_at;
`
	rows, err := s.db.QueryContext(ctx, query, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list range intervals: %w", err)
	}
	defer rows.Close()
	return scanIntervals(rows)
}

func (s *SQLiteIntervalStore) OpenInterval(ctx context.Context, userID string) (domain.Interval, error) {
	const query = `
SELECT id, user_id, date, start_at, end_at, category, source
FROM intervals
WHERE user_id = ? AND end_at IS NULL
ORDER BY start_at DESC
LIMIT 1;
`
	row := s.db.QueryRowContext(ctx, query, userID)
	interval, err := scanInterval(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Interval{}, fmt.Errorf("open interval for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Interval{}, fmt.Errorf("open interval: %w", err)
	}
	return interval, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterval(row rowScanner) (domain.Interval, error) {
	var (
		interval         domain.Interval
		category, source string
		startRaw         string
		endRaw           sql.NullString
	)
	if err := row.Scan(&interval.ID, &interval.UserID, &interval.Date, &startRaw, &endRaw, &category, &source); err != nil {
		return domain.Interval{}, err
	}
	start, err := time.Parse(timeLayout, startRaw)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("parse start: %w", err)
	}
	interval.Start = start
	if endRaw.Valid {
		end, err := time.Parse(timeLayout, endRaw.String)
		if err != nil {
			return domain.Interval{}, fmt.Errorf("parse end: %w", err)
		}
		interval.End = end
	}
	interval.Category = domain.Category(category)
	interval.Source = domain.Source(source)
	return interval, nil
}

func scanIntervals(rows *sql.Rows) ([]domain.Interval, error) {
	intervals := []domain.Interval{}
	for rows.Next() {
		interval, err := scanInterval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interval: %w", err)
		}
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervals: %w", err)
	}
	return intervals, nil
}
