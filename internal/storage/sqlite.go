// Package storage persists analysis attempts to SQLite. Records are
// append-only: nothing in the system updates or deletes an attempt.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/poselab/posecoach/internal/models"
)

// SuccessThreshold is the score below which an attempt counts as a
// successful execution of the pose. Only the boolean outcome is stored
// per record, not the threshold itself.
const SuccessThreshold = 10.0

// HistoryLimit caps the number of records the history query returns.
const HistoryLimit = 50

// hintSeparator joins hint strings for storage in a single column.
const hintSeparator = " | "

// AttemptStore reads and writes pose attempt records.
type AttemptStore struct {
	db *sql.DB
}

// NewAttemptStore opens (creating if needed) the attempt database at
// dbPath and ensures its schema.
func NewAttemptStore(dbPath string) (*AttemptStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &AttemptStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *AttemptStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS pose_attempts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  pose_name TEXT NOT NULL,
  score REAL NOT NULL,
  success INTEGER NOT NULL,
  hints TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pose_attempts_created_at ON pose_attempts (created_at DESC);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create pose_attempts table: %w", err)
	}
	return nil
}

// SaveAttempt appends one attempt record. Success is computed here,
// at write time, as score < SuccessThreshold; the creation timestamp is
// server-assigned.
func (s *AttemptStore) SaveAttempt(ctx context.Context, poseName string, score float64, hints []string) (models.AttemptRecord, error) {
	record := models.AttemptRecord{
		PoseName: poseName,
		Score:    score,
		Success:  score < SuccessThreshold,
		Hints:    strings.Join(hints, hintSeparator),
	}

	const stmt = `
INSERT INTO pose_attempts (pose_name, score, success, hints, created_at)
VALUES (?, ?, ?, ?, ?);
`
	res, err := s.db.ExecContext(ctx, stmt,
		record.PoseName,
		record.Score,
		record.Success,
		record.Hints,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.AttemptRecord{}, fmt.Errorf("insert attempt: %w", err)
	}
	record.ID, err = res.LastInsertId()
	if err != nil {
		return models.AttemptRecord{}, fmt.Errorf("read attempt id: %w", err)
	}
	return record, nil
}

// RecentAttempts returns the most recent attempts, newest first, capped
// at HistoryLimit. A non-positive limit means the cap.
func (s *AttemptStore) RecentAttempts(ctx context.Context, limit int) ([]models.AttemptRecord, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	const query = `
SELECT id, pose_name, score, success, hints
FROM pose_attempts
ORDER BY created_at DESC, id DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]models.AttemptRecord, 0, limit)
	for rows.Next() {
		var rec models.AttemptRecord
		if err := rows.Scan(&rec.ID, &rec.PoseName, &rec.Score, &rec.Success, &rec.Hints); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}

// AllAttempts returns every stored attempt, oldest first. Used by the
// export command.
func (s *AttemptStore) AllAttempts(ctx context.Context) ([]models.AttemptRecord, error) {
	const query = `
SELECT id, pose_name, score, success, hints, created_at
FROM pose_attempts
ORDER BY created_at ASC, id ASC;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.AttemptRecord
	for rows.Next() {
		var rec models.AttemptRecord
		if err := rows.Scan(&rec.ID, &rec.PoseName, &rec.Score, &rec.Success, &rec.Hints, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}

// Close closes the underlying database handle.
func (s *AttemptStore) Close() error {
	return s.db.Close()
}
