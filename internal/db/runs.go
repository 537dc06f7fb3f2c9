package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/saloni/coldreach/internal/report"
)

// Run is one recorded batch run.
type Run struct {
	ID             int64      `json:"id"`
	SenderEmail    string     `json:"senderEmail"`
	RequesterName  string     `json:"requesterName"`
	Status         string     `json:"status"`
	TotalProcessed int        `json:"totalProcessed"`
	SuccessCount   int        `json:"successCount"`
	ErrorCount     int        `json:"errorCount"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// StartRun records the beginning of a batch run and returns its ID.
func (s *Store) StartRun(ctx context.Context, senderEmail, requesterName string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO draft_runs (sender_email, requester_name, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		senderEmail, requesterName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun stores the final counters and the full report JSON.
func (s *Store) CompleteRun(ctx context.Context, runID int64, rep *report.Report) error {
	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	status := "completed"
	if rep.ErrorCount > 0 {
		status = "completed_with_errors"
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE draft_runs
		 SET status = $1, total_processed = $2, success_count = $3, error_count = $4,
		     report = $5, completed_at = NOW()
		 WHERE id = $6`,
		status, rep.TotalProcessed, rep.SuccessCount, rep.ErrorCount, reportJSON, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves one run by ID, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, runID int64) (*Run, error) {
	var run Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, sender_email, requester_name, status, total_processed,
		        success_count, error_count, started_at, completed_at
		 FROM draft_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.SenderEmail, &run.RequesterName, &run.Status,
		&run.TotalProcessed, &run.SuccessCount, &run.ErrorCount,
		&run.StartedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return &run, nil
}

// GetReport retrieves the stored report JSON for a run, or nil when the run
// has not completed.
func (s *Store) GetReport(ctx context.Context, runID int64) ([]byte, error) {
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM draft_runs WHERE id = $1`,
		runID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report for run %d: %w", runID, err)
	}
	return content, nil
}

// ListRuns returns the most recent runs for a sender, newest first.
func (s *Store) ListRuns(ctx context.Context, senderEmail string, limit int) ([]Run, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, sender_email, requester_name, status, total_processed,
		        success_count, error_count, started_at, completed_at
		 FROM draft_runs
		 WHERE sender_email = $1
		 ORDER BY started_at DESC
		 LIMIT $2`,
		senderEmail, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.SenderEmail, &run.RequesterName, &run.Status,
			&run.TotalProcessed, &run.SuccessCount, &run.ErrorCount,
			&run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
