package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/zolinthecow/doctests/internal/repository"
)

// Compile-time check that *DB implements the repository interface.
var _ repository.RunRepository = (*DB)(nil)

// RecordRun persists a run summary and its results in a single transaction;
// either everything lands or nothing does. The run's ID and StartedAt are
// filled in here if unset.
func (db *DB) RecordRun(ctx context.Context, run *repository.RunRecord, results []repository.ResultRecord) error {
	if run.ID == "" {
		run.ID = xid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, passed, failed, skipped, timed_out)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.Passed, run.Failed, run.Skipped, run.TimedOut,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting run: %w", err)
	}

	for seq, res := range results {
		var exitCode sql.NullInt64
		if res.ExitCode != nil {
			exitCode = sql.NullInt64{Int64: int64(*res.ExitCode), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (run_id, seq, doc, line, lang, hook, status, reason, exit_code, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, seq, res.Doc, res.Line, res.Lang, res.Hook, res.Status, res.Reason, exitCode, res.DurationMs,
		)
		if err != nil {
			return fmt.Errorf("sqlite: inserting result %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]repository.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, started_at, passed, failed, skipped, timed_out
		 FROM runs
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing runs: %w", err)
	}
	defer rows.Close()

	var runs []repository.RunRecord
	for rows.Next() {
		var run repository.RunRecord
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Passed, &run.Failed, &run.Skipped, &run.TimedOut); err != nil {
			return nil, fmt.Errorf("sqlite: scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ResultsForRun returns a run's stored results in insert order.
func (db *DB) ResultsForRun(ctx context.Context, runID string) ([]repository.ResultRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT run_id, doc, line, lang, hook, status, reason, exit_code, duration_ms
		 FROM results
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing results: %w", err)
	}
	defer rows.Close()

	var results []repository.ResultRecord
	for rows.Next() {
		var res repository.ResultRecord
		var exitCode sql.NullInt64
		if err := rows.Scan(&res.RunID, &res.Doc, &res.Line, &res.Lang, &res.Hook,
			&res.Status, &res.Reason, &exitCode, &res.DurationMs); err != nil {
			return nil, fmt.Errorf("sqlite: scanning result: %w", err)
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			res.ExitCode = &code
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
