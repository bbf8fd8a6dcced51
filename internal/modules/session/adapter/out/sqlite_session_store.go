package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worklog/internal/modules/session/domain"
	sessionout "worklog/internal/modules/session/port/out"
	apperrors "worklog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (sessionout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  issuer_id TEXT NOT NULL,
  channel_id TEXT NOT NULL,
  state TEXT NOT NULL,
  category TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  resumed_at TEXT NOT NULL,
  break_started_at TEXT,
  break_alerted INTEGER NOT NULL DEFAULT 0,
  open_interval_id TEXT NOT NULL DEFAULT '',
  worked_seconds INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_live ON sessions (user_id) WHERE state != 'ended';
`
	if _, err := store.db.ExecContext(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return store, nil
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, user_id, issuer_id, channel_id, state, category, started_at, ended_at, resumed_at, break_started_at, break_alerted, open_interval_id, worked_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.UserID,
		session.IssuerID,
		session.ChannelID,
		string(session.State),
		session.Category,
		session.StartedAt.Format(timeLayout),
		nullableTime(session.EndedAt),
		session.ResumedAt.Format(timeLayout),
		nullableTime(session.BreakStartedAt),
		boolToInt(session.BreakAlerted),
		session.OpenIntervalID,
		int64(session.Worked/time.Second),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.Session) error {
	const stmt = `
UPDATE sessions SET
  state = ?,
  ended_at = ?,
  resumed_at = ?,
  break_started_at = ?,
  break_alerted = ?,
  open_interval_id = ?,
  worked_seconds = ?
WHERE id = ?;
`
	result, err := s.db.ExecContext(ctx, stmt,
		string(session.State),
		nullableTime(session.EndedAt),
		session.ResumedAt.Format(timeLayout),
		nullableTime(session.BreakStartedAt),
		boolToInt(session.BreakAlerted),
		session.OpenIntervalID,
		int64(session.Worked/time.Second),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", session.ID, apperrors.ErrNotFound)
	}
	return nil
}

const selectColumns = `id, user_id, issuer_id, channel_id, state, category, started_at, ended_at, resumed_at, break_started_at, break_alerted, open_interval_id, worked_seconds`

func (s *SQLiteSessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	query := `SELECT ` + selectColumns + ` FROM sessions WHERE id = ?`
	session, err := scanSession(s.db.QueryRowContext(ctx, query, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionStore) Live(ctx context.Context, userID string) (domain.Session, error) {
	query := `SELECT ` + selectColumns + ` FROM sessions WHERE user_id = ? AND state != 'ended'`
	session, err := scanSession(s.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("live session for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load live session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionStore) ListLive(ctx context.Context) ([]domain.Session, error) {
	query := `SELECT ` + selectColumns + ` FROM sessions WHERE state != 'ended' ORDER BY started_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list live sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var (
		session                domain.Session
		state                  string
		startedRaw, resumedRaw string
		endedRaw, breakRaw     sql.NullString
		alerted                int
		workedSeconds          int64
	)
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.IssuerID,
		&session.ChannelID,
		&state,
		&session.Category,
		&startedRaw,
		&endedRaw,
		&resumedRaw,
		&breakRaw,
		&alerted,
		&session.OpenIntervalID,
		&workedSeconds,
	)
	if err != nil {
		return domain.Session{}, err
	}
	session.State = domain.State(state)
	if session.StartedAt, err = time.Parse(timeLayout, startedRaw); err != nil {
		return domain.Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	if session.ResumedAt, err = time.Parse(timeLayout, resumedRaw); err != nil {
		return domain.Session{}, fmt.Errorf("parse resumed_at: %w", err)
	}
	if endedRaw.Valid {
		if session.EndedAt, err = time.Parse(timeLayout, endedRaw.String); err != nil {
			return domain.Session{}, fmt.Errorf("parse ended_at: %w", err)
		}
	}
	if breakRaw.Valid {
		if session.BreakStartedAt, err = time.Parse(timeLayout, breakRaw.String); err != nil {
			return domain.Session{}, fmt.Errorf("parse break_started_at: %w", err)
		}
	}
	session.BreakAlerted = alerted != 0
	session.Worked = time.Duration(workedSeconds) * time.Second
	return session, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
