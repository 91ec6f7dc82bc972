// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders lint results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fsh-lint/internal/scan"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

// Document is the structured form of a lint report.
type Document struct {
	Root        string          `json:"root" yaml:"root"`
	Files       int             `json:"files" yaml:"files"`
	Definitions int             `json:"definitions" yaml:"definitions"`
	Passed      bool            `json:"passed" yaml:"passed"`
	Problems    []types.Problem `json:"problems" yaml:"problems"`
}

// NewDocument summarizes a result.
func NewDocument(r *scan.Result) Document {
	problems := r.Problems
	if problems == nil {
		problems = []types.Problem{}
	}
	return Document{
		Root:        r.Root,
		Files:       len(r.Files),
		Definitions: len(r.Definitions),
		Passed:      r.Passed(),
		Problems:    problems,
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *scan.Result, format types.OutputFormat) error {
	switch format {
	case types.FormatText, "":
		return writeText(w, r)
	case types.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(r))
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(r)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
}

// Summary returns the closing line of a text report.
func Summary(r *scan.Result) string {
	switch {
	case len(r.Files) == 0:
		return fmt.Sprintf("No %s files found - nothing to do.", r.Extension)
	case r.Passed():
		return fmt.Sprintf("All checks passed (%d definitions scanned).", len(r.Definitions))
	default:
		return fmt.Sprintf("Validation failed (%d problem(s)).", len(r.Problems))
	}
}

func writeText(w io.Writer, r *scan.Result) error {
	for _, p := range r.Problems {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}
	if len(r.Problems) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Summary(r))
	return err
}
