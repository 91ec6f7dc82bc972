// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records lint runs and their problems in a SQLite
// database so that results can be compared across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fsh-lint/internal/scan"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = ".fsh-lint/history.db"

// timeLayout stores run times with a fixed-width fraction so that text
// order in SQLite matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			root TEXT NOT NULL,
			files INTEGER NOT NULL,
			definitions INTEGER NOT NULL,
			problems INTEGER NOT NULL,
			passed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS problems (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			rule TEXT NOT NULL,
			def_id TEXT,
			expected TEXT,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_run_id ON problems(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a lint result and returns the new run's ID.
func (s *Store) Record(ctx context.Context, r *scan.Result, startedAt time.Time) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, root, files, definitions, problems, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, startedAt.UTC().Format(timeLayout), r.Root,
		len(r.Files), len(r.Definitions), len(r.Problems), r.Passed(),
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO problems (run_id, file, line, kind, name, rule, def_id, expected, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing problem insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range r.Problems {
		if _, err := stmt.ExecContext(ctx,
			id, p.File, p.Line, string(p.Kind), p.Name, string(p.Rule), p.ID, p.Expected, p.Message,
		); err != nil {
			return "", fmt.Errorf("inserting problem: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}
