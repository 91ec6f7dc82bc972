// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fsh-lint/pkg/types"
)

// ExportEntry holds a run together with its problems.
type ExportEntry struct {
	Run         `yaml:",inline"`
	ProblemList []types.Problem `json:"problem_list" yaml:"problem_list"`
}

// ExportYAML writes the most recent runs and their problems to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	entries, err := s.exportEntries(ctx, limit)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the most recent runs and their problems to w as JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, limit int) error {
	entries, err := s.exportEntries(ctx, limit)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func (s *Store) exportEntries(ctx context.Context, limit int) ([]ExportEntry, error) {
	runs, err := s.Runs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, run := range runs {
		problems, err := s.Problems(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		if problems == nil {
			problems = []types.Problem{}
		}
		entries[i] = ExportEntry{Run: run, ProblemList: problems}
	}
	return entries, nil
}
