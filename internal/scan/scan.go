// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan walks a directory tree for FSH files, extracts their
// definitions concurrently and validates the aggregate.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/fsh-lint/internal/fsh"
	"github.com/pdiddy/fsh-lint/internal/lint"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

var (
	// ErrRootNotFound reports a root that does not exist or is not a directory.
	ErrRootNotFound = errors.New("directory not found")

	// ErrBadPattern reports a malformed exclude pattern.
	ErrBadPattern = errors.New("malformed pattern")
)

// ConfigError is returned before any scanning when the configuration
// cannot describe a run. Callers map it to an exit status.
type ConfigError struct {
	Setting string
	Value   string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Setting, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one lint run.
type Result struct {
	Root        string             `json:"root" yaml:"root"`
	Extension   string             `json:"extension" yaml:"extension"`
	Files       []string           `json:"files" yaml:"files"`
	Definitions []types.Definition `json:"definitions" yaml:"definitions"`
	Problems    []types.Problem    `json:"problems" yaml:"problems"`
}

// Passed reports whether the run found no problems.
func (r *Result) Passed() bool {
	return len(r.Problems) == 0
}

// Run lints every definition file under cfg.Root. Definitions are
// validated in file path order, then header order within each file.
func Run(ctx context.Context, cfg types.LintConfig, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, err := Files(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("scanning files", "root", cfg.Root, "files", len(files))

	defs, err := extractAll(ctx, files, cfg.Workers, logger)
	if err != nil {
		return nil, err
	}

	problems := lint.Validate(defs, cfg.Whitelist, lint.NewSkipSet(cfg.Skip))
	logger.Debug("validated definitions", "definitions", len(defs), "problems", len(problems))

	return &Result{
		Root:        cfg.Root,
		Extension:   extension(cfg.Extension),
		Files:       files,
		Definitions: defs,
		Problems:    problems,
	}, nil
}

// Files returns the sorted paths of the definition files under cfg.Root,
// leaving out paths matched by cfg.Exclude.
func Files(cfg types.LintConfig) ([]string, error) {
	info, err := os.Stat(cfg.Root)
	if err != nil || !info.IsDir() {
		return nil, &ConfigError{Setting: "root", Value: cfg.Root, Err: ErrRootNotFound}
	}
	for _, p := range cfg.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, &ConfigError{Setting: "exclude", Value: p, Err: ErrBadPattern}
		}
	}

	ext := extension(cfg.Extension)
	var files []string
	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(cfg.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && Excluded(cfg.Exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		if Excluded(cfg.Exclude, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", cfg.Root, err)
	}

	sort.Strings(files)
	return files, nil
}

func extractAll(ctx context.Context, files []string, workers int, logger *slog.Logger) ([]types.Definition, error) {
	if workers <= 0 {
		workers = 1
	}

	perFile := make([][]types.Definition, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defs, err := fsh.Load(path)
			if err != nil {
				return err
			}
			logger.Debug("extracted definitions", "file", path, "definitions", len(defs))
			perFile[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var defs []types.Definition
	for _, d := range perFile {
		defs = append(defs, d...)
	}
	return defs, nil
}

// Excluded reports whether the slash-separated path rel, relative to the
// scan root, matches any of the doublestar patterns.
func Excluded(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func extension(ext string) string {
	if ext == "" {
		return ".fsh"
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
