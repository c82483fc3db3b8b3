// Package state records conversion runs in a local SQLite database so
// `sqf2tcl history` can show what was converted and when. Recording is
// best-effort: a state failure never fails a conversion.
package state

import "time"

// RunStatus represents the lifecycle state of a conversion run.
type RunStatus string

// Run status values.
const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is one recorded conversion.
type Run struct {
	ID         string
	InputPath  string
	OutputPath string
	Statements int
	Unknown    int
	ReportMode bool
	Status     RunStatus
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Store persists conversion runs.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error
	CreateRun(inputPath, outputPath string) (*Run, error)
	CompleteRun(id string, statements, unknown int, reportMode bool) error
	FailRun(id string, runErr error) error
	RecentRuns(limit int) ([]*Run, error)
}
