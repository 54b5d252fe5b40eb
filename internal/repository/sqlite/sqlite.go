// Package sqlite implements the run-history repository on an embedded SQLite
// database. modernc.org/sqlite is a pure Go driver, so the binary stays
// CGo-free and cross-compiles cleanly.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements repository.RunRepository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the history database at dbPath and runs migrations.
// Use ":memory:" for tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets a reader inspect history while a run is being recorded.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			passed     INTEGER NOT NULL DEFAULT 0,
			failed     INTEGER NOT NULL DEFAULT 0,
			skipped    INTEGER NOT NULL DEFAULT 0,
			timed_out  INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS results (
			run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq         INTEGER NOT NULL,
			doc         TEXT NOT NULL DEFAULT '',
			line        INTEGER NOT NULL DEFAULT 0,
			lang        TEXT NOT NULL DEFAULT '',
			hook        TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			exit_code   INTEGER,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`)
	if err != nil {
		return fmt.Errorf("creating history tables: %w", err)
	}
	return nil
}
