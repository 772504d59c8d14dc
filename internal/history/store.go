// Package history persists settled command executions to a local SQLite
// database so past runs can be browsed and summarized across sessions.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Execution is one settled command run.
type Execution struct {
	ID         uuid.UUID
	Command    string
	Category   string
	Project    string
	WorkingDir string
	ExitCode   int
	Success    bool
	Duration   time.Duration
	StartedAt  time.Time
}

// CategoryStats aggregates outcomes for one command category.
type CategoryStats struct {
	Category      string
	Runs          int
	Successes     int
	AvgDuration   time.Duration
	LastStartedAt time.Time
}

// SuccessRate is the fraction of runs that succeeded, 0 when no runs exist.
func (s CategoryStats) SuccessRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Runs)
}

// Store manages the SQLite execution history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath and
// applies the schema. Use ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks instead of
	// failing when another devdeck process holds the file.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts one settled execution. A zero ID is assigned a fresh UUID.
func (s *Store) Record(ctx context.Context, exec *Execution) error {
	if exec.ID == uuid.Nil {
		exec.ID = uuid.New()
	}

	query := `INSERT INTO executions
		(id, command, category, project, working_dir, exit_code, success, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		exec.ID.String(),
		exec.Command,
		exec.Category,
		exec.Project,
		exec.WorkingDir,
		exec.ExitCode,
		exec.Success,
		exec.Duration.Milliseconds(),
		exec.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("insert execution: %w", err)
	}
	return nil
}

// Recent returns the most recent executions, newest first. An empty project
// matches all projects; limit <= 0 defaults to 50.
func (s *Store) Recent(ctx context.Context, project string, limit int) ([]*Execution, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, command, category, project, working_dir, exit_code, success, duration_ms, started_at
		FROM executions`
	args := []interface{}{}

	if project != "" {
		query += " WHERE project = ?"
		args = append(args, project)
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	var executions []*Execution
	for rows.Next() {
		exec, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		executions = append(executions, exec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate execution rows: %w", err)
	}
	return executions, nil
}

func scanExecution(rows *sql.Rows) (*Execution, error) {
	exec := &Execution{}
	var id string
	var durationMs int64

	err := rows.Scan(
		&id,
		&exec.Command,
		&exec.Category,
		&exec.Project,
		&exec.WorkingDir,
		&exec.ExitCode,
		&exec.Success,
		&durationMs,
		&exec.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan execution row: %w", err)
	}

	exec.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse execution id: %w", err)
	}
	exec.Duration = time.Duration(durationMs) * time.Millisecond
	return exec, nil
}

// Stats aggregates run counts, success counts and average duration per
// category. An empty project matches all projects.
func (s *Store) Stats(ctx context.Context, project string) ([]CategoryStats, error) {
	query := `SELECT
		category,
		COUNT(*) as runs,
		COUNT(CASE WHEN success = 1 THEN 1 END) as successes,
		AVG(duration_ms) as avg_duration,
		MAX(started_at) as last_started
		FROM executions`
	args := []interface{}{}

	if project != "" {
		query += " WHERE project = ?"
		args = append(args, project)
	}
	query += " GROUP BY category ORDER BY runs DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []CategoryStats
	for rows.Next() {
		var cs CategoryStats
		var avgDuration sql.NullFloat64
		var lastStarted sql.NullString

		if err := rows.Scan(&cs.Category, &cs.Runs, &cs.Successes, &avgDuration, &lastStarted); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		if avgDuration.Valid {
			cs.AvgDuration = time.Duration(avgDuration.Float64) * time.Millisecond
		}
		// MAX() strips the column's declared type, so the driver hands the
		// timestamp back as text.
		if lastStarted.Valid {
			if ts, err := time.Parse("2006-01-02 15:04:05.999999999-07:00", lastStarted.String); err == nil {
				cs.LastStartedAt = ts
			} else if ts, err := time.Parse(time.RFC3339Nano, lastStarted.String); err == nil {
				cs.LastStartedAt = ts
			}
		}
		stats = append(stats, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return stats, nil
}

// Prune deletes executions older than keepDays. Zero or negative keepDays
// keeps everything. Returns the number of deleted rows.
func (s *Store) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	result, err := s.db.ExecContext(ctx, `DELETE FROM executions WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune executions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return deleted, nil
}
