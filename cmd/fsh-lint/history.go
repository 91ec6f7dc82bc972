// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fsh-lint/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded lint runs",
	Long: `History reads the SQLite database that check and watch write to when
--history-db (or history_db in fsh-lint.yaml) is set.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Runs(cmd.Context(), limit)
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatRuns(cmd.OutOrStdout(), runs, jsonOutput)
	},
}

func formatRuns(w io.Writer, runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-6s  %8s  %s\n", "Run", "Started", "Status", "Problems", "Root")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		status := "pass"
		if !r.Passed {
			status = "fail"
		}
		fmt.Fprintf(w, "%-36s  %-20s  %-6s  %8d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), status, r.Problems, r.Root)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the problems of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		problems, err := store.Problems(cmd.Context(), run.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s at %s: %d files, %d definitions, %d problem(s)\n",
			run.ID, run.StartedAt.Local().Format(time.DateTime), run.Files, run.Definitions, run.Problems)
		for _, p := range problems {
			fmt.Fprintln(out, p.String())
		}
		return nil
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recent runs and their problems as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")

		switch format {
		case "yaml", "":
			return store.ExportYAML(cmd.Context(), cmd.OutOrStdout(), limit)
		case "json":
			return store.ExportJSON(cmd.Context(), cmd.OutOrStdout(), limit)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

// --- shared helpers ---

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	if err := viper.BindPFlag("history_db", cmd.Flags().Lookup("db")); err != nil {
		return nil, fmt.Errorf("binding flag db: %w", err)
	}
	path := viper.GetString("history_db")
	if path == "" {
		path = history.DefaultPath
	}
	return history.Open(path)
}

func init() {
	historyCmd.PersistentFlags().String("db", "", "history database (default: history_db from config, else "+history.DefaultPath+")")

	historyListCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().Int("limit", 100, "maximum runs to export")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
