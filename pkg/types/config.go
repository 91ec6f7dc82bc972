// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how a lint report is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// NamingConfig holds the rules applied to definition names and ids.
type NamingConfig struct {
	// Whitelist lists tokens (e.g. "MedCom") that are kept as one segment
	// when deriving the kebab-case id. Matching is case-sensitive.
	Whitelist []string `json:"whitelist" yaml:"whitelist"`

	// Skip lists "<kind>: <name>" entries exempt from every check.
	// Entries are compared case-insensitively.
	Skip []string `json:"skip" yaml:"skip"`
}

// LintConfig holds settings for a lint run over a directory tree.
type LintConfig struct {
	NamingConfig `yaml:",inline"`

	// Root is the directory that is scanned (default "input").
	Root string `json:"root" yaml:"root"`

	// Extension is the file extension of definition files (default ".fsh").
	Extension string `json:"extension" yaml:"extension"`

	// Exclude lists doublestar patterns, relative to Root, for paths that
	// are never scanned.
	Exclude []string `json:"exclude" yaml:"exclude"`

	// Workers bounds the number of files read concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// Format selects the report format: text, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// HistoryDB is the SQLite file runs are recorded in. Empty disables
	// recording.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`
}

// DefaultLintConfig returns the configuration used when neither flags nor
// a config file say otherwise.
func DefaultLintConfig() LintConfig {
	return LintConfig{
		NamingConfig: NamingConfig{
			Whitelist: []string{"MedCom"},
			Skip:      []string{},
		},
		Root:      "input",
		Extension: ".fsh",
		Exclude:   []string{"**/.git/**", "**/node_modules/**"},
		Workers:   4,
		Format:    FormatText,
	}
}
