package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"laprun/internal/modules/session/domain"
	"laprun/internal/platform/sqlitedb"
)

type SQLiteHistoryStore struct {
	db *sql.DB
}

func NewSQLiteHistoryStore(dbPath string) (*SQLiteHistoryStore, error) {
	db, err := sqlitedb.Open(dbPath)
	if err != nil {
		return nil, err
	}
	store := &SQLiteHistoryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS session_history (
  id TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  finished INTEGER NOT NULL,
  total_laps INTEGER NOT NULL,
  total_active_laps INTEGER NOT NULL,
  planned_seconds INTEGER NOT NULL,
  completed_seconds INTEGER NOT NULL,
  entries_total INTEGER NOT NULL,
  entries_completed INTEGER NOT NULL,
  task_totals TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session_history table: %w", err)
	}
	return nil
}

type taskTotalRecord struct {
	TaskID      int    `json:"task_id"`
	Title       string `json:"title"`
	Seconds     int    `json:"seconds"`
	Occurrences int    `json:"occurrences"`
}

// Append stores a session end. Appending the same session id again
// overwrites the outcome fields.
func (s *SQLiteHistoryStore) Append(ctx context.Context, summary domain.Summary) error {
	totals := make([]taskTotalRecord, 0, len(summary.TaskTotals))
	for _, t := range summary.TaskTotals {
		totals = append(totals, taskTotalRecord(t))
	}
	payload, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("marshal task totals: %w", err)
	}
	const stmt = `
INSERT INTO session_history (id, schema_version, started_at, ended_at, finished, total_laps, total_active_laps, planned_seconds, completed_seconds, entries_total, entries_completed, task_totals)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  ended_at=excluded.ended_at,
  finished=excluded.finished,
  completed_seconds=excluded.completed_seconds,
  entries_completed=excluded.entries_completed,
  task_totals=excluded.task_totals;
`
	_, err = s.db.ExecContext(ctx, stmt,
		summary.SessionID,
		domain.SchemaVersion,
		summary.StartedAt.UTC().Format(time.RFC3339),
		summary.EndedAt.UTC().Format(time.RFC3339),
		summary.Finished,
		summary.TotalLaps,
		summary.TotalActiveLaps,
		summary.PlannedSeconds,
		summary.CompletedSeconds,
		summary.EntriesTotal,
		summary.EntriesCompleted,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert session history: %w", err)
	}
	return nil
}

// List returns the most recent sessions first. limit <= 0 returns all.
func (s *SQLiteHistoryStore) List(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, ended_at, finished, total_laps, total_active_laps, planned_seconds, completed_seconds, entries_total, entries_completed, task_totals
FROM session_history
ORDER BY ended_at DESC, rowid DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session history: %w", err)
	}
	defer rows.Close()

	out := []domain.Summary{}
	for rows.Next() {
		var (
			s              domain.Summary
			started, ended string
			totals         string
		)
		if err := rows.Scan(&s.SessionID, &started, &ended, &s.Finished, &s.TotalLaps, &s.TotalActiveLaps, &s.PlannedSeconds, &s.CompletedSeconds, &s.EntriesTotal, &s.EntriesCompleted, &totals); err != nil {
			return nil, fmt.Errorf("scan session history: %w", err)
		}
		if s.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if s.EndedAt, err = time.Parse(time.RFC3339, ended); err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		records := []taskTotalRecord{}
		if err := json.Unmarshal([]byte(totals), &records); err != nil {
			return nil, fmt.Errorf("decode task totals: %w", err)
		}
		for _, r := range records {
			s.TaskTotals = append(s.TaskTotals, domain.TaskTotal(r))
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session history: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}
