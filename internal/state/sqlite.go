package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// CreateRun records the start of a conversion.
func (s *SQLiteStore) CreateRun(inputPath, outputPath string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:         generateID(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     StatusRunning,
		StartedAt:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO conversion_runs (id, input_path, output_path, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.InputPath, run.OutputPath, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// CompleteRun marks a run as completed and records its stats.
func (s *SQLiteStore) CompleteRun(id string, statements, unknown int, reportMode bool) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	result, err := s.db.Exec(
		`UPDATE conversion_runs
		 SET status = ?, statements = ?, unknown = ?, report_mode = ?, finished_at = ?
		 WHERE id = ?`,
		StatusCompleted, statements, unknown, reportMode, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// FailRun marks a run as failed with an error message.
func (s *SQLiteStore) FailRun(id string, runErr error) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}

	now := time.Now().UTC()
	result, err := s.db.Exec(
		`UPDATE conversion_runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		StatusFailed, msg, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, input_path, output_path, statements, unknown, report_mode, status, error, started_at, finished_at
		 FROM conversion_runs
		 ORDER BY started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var (
			errMsg     sql.NullString
			finishedAt sql.NullTime
		)
		if err := rows.Scan(
			&run.ID, &run.InputPath, &run.OutputPath,
			&run.Statements, &run.Unknown, &run.ReportMode,
			&run.Status, &errMsg, &run.StartedAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if errMsg.Valid {
			run.Error = errMsg.String
		}
		if finishedAt.Valid {
			run.FinishedAt = &finishedAt.Time
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}
