// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fsh-lint/internal/history"
	"github.com/pdiddy/fsh-lint/internal/lint"
	"github.com/pdiddy/fsh-lint/internal/scan"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(root string) types.LintConfig {
	cfg := types.DefaultLintConfig()
	cfg.Root = root
	cfg.Whitelist = nil
	return cfg
}

// newConfigCmd resets viper, loads configYAML as the config file when it is
// not empty, and returns a command carrying the lint flags.
func newConfigCmd(t *testing.T, configYAML string) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	bindEnv()

	if configYAML != "" {
		viper.SetConfigFile(writeFile(t, t.TempDir(), "fsh-lint.yaml", configYAML))
		require.NoError(t, viper.ReadInConfig())
	}

	cmd := &cobra.Command{Use: "check"}
	addLintFlags(cmd)
	return cmd
}

func TestLintConfig(t *testing.T) {
	tests := []struct {
		name          string
		config        string
		env           map[string]string
		flags         map[string]string
		args          []string
		wantRoot      string
		wantWhitelist []string
		wantSkip      []string
	}{
		{
			name:          "defaults",
			wantRoot:      "input",
			wantWhitelist: []string{"MedCom"},
		},
		{
			name:          "config file",
			config:        "root: fsh\nwhitelist:\n  - HL7\n  - MedCom\n",
			wantRoot:      "fsh",
			wantWhitelist: []string{"HL7", "MedCom"},
		},
		{
			name:          "env overrides config file",
			config:        "root: fsh\nwhitelist:\n  - HL7\n",
			env:           map[string]string{"FSH_LINT_ROOT": "src", "FSH_LINT_WHITELIST": "MedCom, HL7"},
			wantRoot:      "src",
			wantWhitelist: []string{"MedCom", "HL7"},
		},
		{
			name:          "flag overrides env",
			env:           map[string]string{"FSH_LINT_ROOT": "src", "FSH_LINT_WHITELIST": "MedCom,HL7"},
			flags:         map[string]string{"root": "lib", "whitelist": "DK"},
			wantRoot:      "lib",
			wantWhitelist: []string{"DK"},
		},
		{
			name:          "argument overrides root flag",
			flags:         map[string]string{"root": "lib"},
			args:          []string{"defs"},
			wantRoot:      "defs",
			wantWhitelist: []string{"MedCom"},
		},
		{
			name:          "env skip is split on commas only",
			env:           map[string]string{"FSH_LINT_SKIP": "CodeSystem: medcom-test, ValueSet: Foo"},
			wantRoot:      "input",
			wantWhitelist: []string{"MedCom"},
			wantSkip:      []string{"CodeSystem: medcom-test", "ValueSet: Foo"},
		},
		{
			name:          "config skip as quoted strings and mappings",
			config:        "skip:\n  - \"ValueSet: Foo\"\n  - CodeSystem: medcom-test\n",
			wantRoot:      "input",
			wantWhitelist: []string{"MedCom"},
			wantSkip:      []string{"ValueSet: Foo", "CodeSystem: medcom-test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cmd := newConfigCmd(t, tt.config)
			for k, v := range tt.flags {
				require.NoError(t, cmd.Flags().Set(k, v))
			}

			cfg, err := lintConfig(cmd, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, cfg.Root)
			assert.Equal(t, tt.wantWhitelist, cfg.Whitelist)
			if tt.wantSkip == nil {
				assert.Empty(t, cfg.Skip)
			} else {
				assert.Equal(t, tt.wantSkip, cfg.Skip)
			}
		})
	}
}

func TestLintConfigSkipApplies(t *testing.T) {
	t.Setenv("FSH_LINT_SKIP", "CodeSystem: medcom-test")
	cfg, err := lintConfig(newConfigCmd(t, ""), nil)
	require.NoError(t, err)

	skip := lint.NewSkipSet(cfg.Skip)
	assert.True(t, skip.Contains(types.Definition{Kind: types.KindCodeSystem, Name: "medcom-test"}))
}

func TestLintConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		setting string
	}{
		{"nested list in skip", "skip:\n  - [a, b]\n", "skip"},
		{"mapping in whitelist", "whitelist:\n  - MedCom: x\n", "whitelist"},
		{"non-string skip name", "skip:\n  - CodeSystem: [a]\n", "skip"},
		{"unknown format", "format: xml\n", "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lintConfig(newConfigCmd(t, tt.config), nil)
			require.Error(t, err)

			var cfgErr *scan.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.setting, cfgErr.Setting)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestRunLintScenarios(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantPass bool
		wantOut  []string
	}{
		{
			name:     "non-PascalCase profile without id",
			content:  "Profile: myProfile\nParent: Patient\n",
			wantPass: false,
			wantOut: []string{
				"profiles.fsh:1: Profile 'myProfile' is not PascalCase",
				"Validation failed (1 problem(s)).",
			},
		},
		{
			name:     "compliant profile",
			content:  "Profile: MyProfile\nId: my-profile\n",
			wantPass: true,
			wantOut:  []string{"All checks passed (1 definitions scanned)."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "profiles.fsh", tt.content)

			var out bytes.Buffer
			result, err := runLint(context.Background(), &out, testConfig(dir))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, result.Passed())
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRunLintNoFiles(t *testing.T) {
	var out bytes.Buffer
	result, err := runLint(context.Background(), &out, testConfig(t.TempDir()))
	require.NoError(t, err)
	assert.True(t, result.Passed())
	assert.Equal(t, "No .fsh files found - nothing to do.\n", out.String())
}

func TestRunLintMissingRoot(t *testing.T) {
	var out bytes.Buffer
	_, err := runLint(context.Background(), &out, testConfig(filepath.Join(t.TempDir(), "input")))
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Empty(t, out.String(), "nothing is scanned or printed")
}

func TestRunLintRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cs.fsh", "CodeSystem: FooBar\nId: foobar\n")

	cfg := testConfig(dir)
	cfg.HistoryDB = filepath.Join(t.TempDir(), "history.db")

	_, err := runLint(context.Background(), &bytes.Buffer{}, cfg)
	require.NoError(t, err)

	store, err := history.Open(cfg.HistoryDB)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Problems)
	assert.False(t, runs[0].Passed)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"problems found", errProblemsFound, 1},
		{"missing root", &scan.ConfigError{Setting: "root", Value: "input", Err: scan.ErrRootNotFound}, 2},
		{"wrapped config error", fmt.Errorf("run: %w", &scan.ConfigError{Setting: "format", Err: errUnknownFormat}), 2},
		{"other failure", fmt.Errorf("reading input/a.fsh: permission denied"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestWriteKebab(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeKebab(&out, []string{"MedComCodeSystem", "myProfile"}, []string{"MedCom"}))

	assert.Equal(t,
		"MedComCodeSystem\tmedcom-code-system\n"+
			"myProfile\tmy-profile\t(not PascalCase)\n",
		out.String())
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsh-lint.yaml")
	require.NoError(t, writeDefaultConfig(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg types.LintConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.DefaultLintConfig(), cfg)
	assert.Contains(t, string(data), `- "CodeSystem: medcom-test"`)

	err = writeDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, writeDefaultConfig(path, true))
}

func TestFormatRuns(t *testing.T) {
	runs := []history.Run{{
		ID:        "0b6c3a0e-8a7e-4d47-9a57-6f1f3c1f2a11",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Root:      "input",
		Problems:  3,
	}}

	var out bytes.Buffer
	require.NoError(t, formatRuns(&out, runs, false))
	assert.Contains(t, out.String(), "0b6c3a0e-8a7e-4d47-9a57-6f1f3c1f2a11")
	assert.Contains(t, out.String(), "fail")
	assert.Contains(t, out.String(), "1 runs")

	out.Reset()
	require.NoError(t, formatRuns(&out, nil, false))
	assert.Equal(t, "No runs recorded.\n", out.String())
}
