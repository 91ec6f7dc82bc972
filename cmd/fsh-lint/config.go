// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fsh-lint/internal/scan"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

var (
	errUnknownFormat = errors.New("unknown format: use text, json or yaml")
	errBadListEntry  = errors.New(`list entries must be strings, or "<kind>: <name>" mappings for skip`)
)

// configHeader is written above the default settings by init.
const configHeader = `# fsh-lint settings. Flags and FSH_LINT_* variables override these values;
# list variables take comma-separated values. Quote skip entries so YAML keeps
# them as strings:
#   skip:
#     - "CodeSystem: medcom-test"
`

// lintFlags maps viper keys to the flag names that override them.
var lintFlags = map[string]string{
	"root":       "root",
	"extension":  "ext",
	"whitelist":  "whitelist",
	"skip":       "skip",
	"exclude":    "exclude",
	"workers":    "workers",
	"format":     "format",
	"history_db": "history-db",
}

// addLintFlags registers the flags shared by check and watch.
func addLintFlags(cmd *cobra.Command) {
	def := types.DefaultLintConfig()
	f := cmd.Flags()
	f.String("root", def.Root, "directory to scan (or pass it as the first argument)")
	f.String("ext", def.Extension, "extension of definition files")
	f.StringSlice("whitelist", def.Whitelist, "tokens kept as one id segment, e.g. MedCom,HL7")
	f.StringSlice("skip", nil, `definitions exempt from all checks, as "<kind>: <name>"`)
	f.StringSlice("exclude", def.Exclude, "glob patterns, relative to the root, that are not scanned")
	f.Int("workers", def.Workers, "number of files read concurrently")
	f.String("format", string(def.Format), "report format: text, json or yaml")
	f.String("history-db", "", "record the run in this SQLite database")
}

// lintConfig resolves the lint settings for cmd: flags override
// FSH_LINT_* environment variables, which override the config file.
func lintConfig(cmd *cobra.Command, args []string) (types.LintConfig, error) {
	for key, name := range lintFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return types.LintConfig{}, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	whitelist, err := stringList("whitelist", false)
	if err != nil {
		return types.LintConfig{}, err
	}
	skip, err := stringList("skip", true)
	if err != nil {
		return types.LintConfig{}, err
	}
	exclude, err := stringList("exclude", false)
	if err != nil {
		return types.LintConfig{}, err
	}

	cfg := types.LintConfig{
		NamingConfig: types.NamingConfig{
			Whitelist: whitelist,
			Skip:      skip,
		},
		Root:      viper.GetString("root"),
		Extension: viper.GetString("extension"),
		Exclude:   exclude,
		Workers:   viper.GetInt("workers"),
		Format:    types.OutputFormat(strings.ToLower(viper.GetString("format"))),
		HistoryDB: viper.GetString("history_db"),
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if cfg.Extension != "" && !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}

	switch cfg.Format {
	case types.FormatText, types.FormatJSON, types.FormatYAML:
	default:
		return cfg, &scan.ConfigError{Setting: "format", Value: string(cfg.Format), Err: errUnknownFormat}
	}
	return cfg, nil
}

// stringList reads the list setting key. Flags yield a slice, FSH_LINT_*
// variables a comma-separated string, and the config file a YAML sequence.
// With pairs set, a mapping entry such as "- CodeSystem: medcom-test" is
// accepted and becomes "CodeSystem: medcom-test". Entries are trimmed and
// blank entries dropped.
func stringList(key string, pairs bool) ([]string, error) {
	var items []any
	switch v := viper.Get(key).(type) {
	case nil:
		return nil, nil
	case string:
		for _, s := range strings.Split(v, ",") {
			items = append(items, s)
		}
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []any:
		items = v
	default:
		return nil, &scan.ConfigError{Setting: key, Value: fmt.Sprint(v), Err: errBadListEntry}
	}

	var list []string
	for _, item := range items {
		entries, err := listEntries(item, pairs)
		if err != nil {
			return nil, &scan.ConfigError{Setting: key, Value: fmt.Sprint(item), Err: err}
		}
		list = append(list, entries...)
	}
	return list, nil
}

func listEntries(item any, pairs bool) ([]string, error) {
	var m map[string]any
	switch v := item.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}, nil
		}
		return nil, nil
	case map[string]any:
		m = v
	case map[any]any:
		m = make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
	default:
		return nil, errBadListEntry
	}
	if !pairs {
		return nil, errBadListEntry
	}

	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	entries := make([]string, 0, len(kinds))
	for _, k := range kinds {
		name, ok := m[k].(string)
		if !ok {
			return nil, errBadListEntry
		}
		entries = append(entries, canonicalKind(k)+": "+strings.TrimSpace(name))
	}
	return entries, nil
}

// canonicalKind restores the keyword spelling of a mapping key; viper
// lowercases keys read from the config file.
func canonicalKind(s string) string {
	s = strings.TrimSpace(s)
	for _, k := range types.Kinds {
		if strings.EqualFold(s, string(k)) {
			return string(k)
		}
	}
	return s
}

// writeDefaultConfig writes the default settings as YAML to path.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists: use --force to overwrite", path)
		}
	}

	data, err := yaml.Marshal(types.DefaultLintConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
