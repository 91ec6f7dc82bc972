// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fsh-lint/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Re-check definition files whenever they change",
	Long: `Watch runs check once, then watches the root directory and re-runs it
each time a definition file is created, modified, renamed or removed.
Bursts of changes are coalesced. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := lintConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := viper.BindPFlag("watch.debounce", cmd.Flags().Lookup("debounce")); err != nil {
		return fmt.Errorf("binding flag debounce: %w", err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if _, err := runLint(ctx, out, cfg); err != nil {
		return err
	}

	w, err := watch.New(cfg.Root, cfg.Extension, cfg.Exclude, viper.GetDuration("watch.debounce"), logger)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		fmt.Fprintf(out, "\nchanged: %s\n", strings.Join(changed, ", "))
		if _, err := runLint(ctx, out, cfg); err != nil {
			logger.Error("check failed", "error", err)
		}
	})
}

func init() {
	addLintFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-checking")

	rootCmd.AddCommand(watchCmd)
}
