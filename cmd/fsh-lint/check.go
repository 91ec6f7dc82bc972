// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fsh-lint/internal/history"
	"github.com/pdiddy/fsh-lint/internal/report"
	"github.com/pdiddy/fsh-lint/internal/scan"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [root]",
	Short: "Check definition names and ids under a directory",
	Long: `Check scans the root directory for definition files and reports every
Profile, CodeSystem and ValueSet whose name is not PascalCase or whose Id is
not the kebab-case form of its name.

Each problem is printed as <file>:<line>: <message>, followed by a summary.
The exit status is 0 when no problems are found (including when there are no
files), 1 when problems are found, and 2 when the root directory is missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := lintConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := runLint(cmd.Context(), cmd.OutOrStdout(), cfg)
	if err != nil {
		return err
	}
	if !result.Passed() {
		return errProblemsFound
	}
	return nil
}

// runLint scans, prints the report, and records the run when a history
// database is configured.
func runLint(ctx context.Context, w io.Writer, cfg types.LintConfig) (*scan.Result, error) {
	started := time.Now()

	result, err := scan.Run(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := report.Write(w, result, cfg.Format); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	if cfg.HistoryDB != "" {
		if err := recordRun(ctx, cfg.HistoryDB, result, started); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func recordRun(ctx context.Context, path string, result *scan.Result, started time.Time) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, result, started)
	if err != nil {
		return err
	}
	logger.Info("recorded run", "id", id, "db", path)
	return nil
}

func init() {
	addLintFlags(checkCmd)

	rootCmd.AddCommand(checkCmd)
}
