// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/fsh-lint/pkg/types"
)

// ErrRunNotFound is returned when a run ID is not in the database.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded lint run.
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	Root        string    `json:"root" yaml:"root"`
	Files       int       `json:"files" yaml:"files"`
	Definitions int       `json:"definitions" yaml:"definitions"`
	Problems    int       `json:"problems" yaml:"problems"`
	Passed      bool      `json:"passed" yaml:"passed"`
}

const defaultLimit = 20

// Runs returns the most recent runs, newest first. A limit of zero or
// less uses the default of 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, root, files, definitions, problems, passed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run returns a single run by ID.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, root, files, definitions, problems, passed
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// Problems returns the problems recorded for a run, in report order.
func (s *Store) Problems(ctx context.Context, runID string) ([]types.Problem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, line, kind, name, rule, COALESCE(def_id, ''), COALESCE(expected, ''), message
		 FROM problems WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying problems: %w", err)
	}
	defer rows.Close()

	var problems []types.Problem
	for rows.Next() {
		var p types.Problem
		var kind, rule string
		if err := rows.Scan(&p.File, &p.Line, &kind, &p.Name, &rule, &p.ID, &p.Expected, &p.Message); err != nil {
			return nil, fmt.Errorf("scanning problem: %w", err)
		}
		p.Kind = types.Kind(kind)
		p.Rule = types.Rule(rule)
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var startedAt string
	if err := row.Scan(&run.ID, &startedAt, &run.Root, &run.Files, &run.Definitions, &run.Problems, &run.Passed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run time %q: %w", startedAt, err)
	}
	run.StartedAt = t
	return run, nil
}
