package state

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestSQLiteStore_CreateRun(t *testing.T) {
	store := newTestStore(t)

	run, err := store.CreateRun("mission.sqf", "mission.tcl")
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "mission.sqf", run.InputPath)
	assert.Equal(t, "mission.tcl", run.OutputPath)
	assert.Equal(t, StatusRunning, run.Status)
	assert.False(t, run.StartedAt.IsZero())
}

func TestSQLiteStore_CompleteRun(t *testing.T) {
	store := newTestStore(t)

	run, err := store.CreateRun("in.sqf", "out.tcl")
	require.NoError(t, err)

	require.NoError(t, store.CompleteRun(run.ID, 12, 2, false))

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 12, got.Statements)
	assert.Equal(t, 2, got.Unknown)
	assert.False(t, got.ReportMode)
	assert.NotNil(t, got.FinishedAt)
}

func TestSQLiteStore_CompleteRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.CompleteRun("no-such-run", 0, 0, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLiteStore_FailRun(t *testing.T) {
	store := newTestStore(t)

	run, err := store.CreateRun("in.sqf", "out.tcl")
	require.NoError(t, err)

	require.NoError(t, store.FailRun(run.ID, fmt.Errorf("read error")))

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, "read error", runs[0].Error)
}

func TestSQLiteStore_RecentRuns_Limit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.CreateRun(fmt.Sprintf("in%d.sqf", i), "out.tcl")
		require.NoError(t, err)
	}

	runs, err := store.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSQLiteStore_RecentRuns_Empty(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteStore_OpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store := NewSQLiteStore()
	require.NoError(t, store.Open(path))
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate())

	_, err := store.CreateRun("in.sqf", "out.tcl")
	assert.NoError(t, err)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()

	_, err := store.CreateRun("in.sqf", "out.tcl")
	assert.Error(t, err)

	_, err = store.RecentRuns(10)
	assert.Error(t, err)
}
