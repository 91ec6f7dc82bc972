// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fsh-lint CLI, which checks the
// naming of Profile, CodeSystem and ValueSet definitions in FSH files.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fsh-lint/internal/scan"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics to stderr; --verbose lowers the level to debug.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// errProblemsFound signals a completed run with naming problems. The report
// has already been printed, so main only sets the exit status.
var errProblemsFound = errors.New("naming problems found")

// rootCmd is the base command for the fsh-lint CLI.
var rootCmd = &cobra.Command{
	Use:   "fsh-lint",
	Short: "Check naming conventions in FSH definition files",
	Long: `fsh-lint scans a directory tree for FSH files and checks every Profile,
CodeSystem and ValueSet definition: the name must be PascalCase, and a declared
Id must be the kebab-case form of the name. Whitelisted tokens such as an
organization acronym (MedCom) are kept as one segment.

Settings come from flags, FSH_LINT_* environment variables, or fsh-lint.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fsh-lint.yaml or ~/.config/fsh-lint/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics to stderr")
}

func initConfig() {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fsh-lint")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fsh-lint"))
		}
	}

	bindEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Info("using config file", "path", viper.ConfigFileUsed())
	}
}

// bindEnv makes every setting readable from an FSH_LINT_<KEY> variable.
func bindEnv() {
	viper.SetEnvPrefix("FSH_LINT")
	viper.AutomaticEnv()
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var cfgErr *scan.ConfigError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errProblemsFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(exitCode(err))
	}
}
