// Package repository defines the persistence interface for run history. The
// engine knows nothing about it: the CLI records a run's results after the
// engine returns.
package repository

import (
	"context"
	"time"
)

// RunRecord summarizes one engine invocation.
type RunRecord struct {
	ID        string
	StartedAt time.Time
	Passed    int
	Failed    int
	Skipped   int
	TimedOut  int
}

// ResultRecord is one stored block or hook result.
type ResultRecord struct {
	RunID      string
	Doc        string
	Line       int
	Lang       string
	Hook       string
	Status     string
	Reason     string
	ExitCode   *int
	DurationMs int64
}

// RunRepository stores and retrieves run history.
type RunRepository interface {
	// RecordRun persists a run summary and its results in one transaction.
	RecordRun(ctx context.Context, run *RunRecord, results []ResultRecord) error
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	// ResultsForRun returns the stored results of one run in insert order.
	ResultsForRun(ctx context.Context, runID string) ([]ResultRecord, error)
}
