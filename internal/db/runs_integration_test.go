//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saloni/coldreach/internal/report"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("Skipping integration test")
	}
	store, err := Connect(context.Background(), url)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestRunLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	store := setupTestDB(t)
	defer store.Close()

	ctx := context.Background()

	runID, err := store.StartRun(ctx, "saloni@example.com", "Saloni Ranka")
	require.NoError(t, err)
	require.NotZero(t, runID)

	rep := report.New()
	rep.TotalProcessed = 2
	rep.RecordSuccess()
	rep.RecordError("Failed to process a@example.com (A): boom")
	require.NoError(t, store.CompleteRun(ctx, runID, rep))

	run, err := store.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "completed_with_errors", run.Status)
	assert.Equal(t, 2, run.TotalProcessed)
	assert.Equal(t, 1, run.SuccessCount)
	assert.Equal(t, 1, run.ErrorCount)
	assert.NotNil(t, run.CompletedAt)

	stored, err := store.GetReport(ctx, runID)
	require.NoError(t, err)
	assert.Contains(t, string(stored), "totalProcessed")

	runs, err := store.ListRuns(ctx, "saloni@example.com", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, runs)
}

func TestGetRunMissing_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	store := setupTestDB(t)
	defer store.Close()

	run, err := store.GetRun(context.Background(), -1)
	require.NoError(t, err)
	assert.Nil(t, run)
}
