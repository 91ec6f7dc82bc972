// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Rule names the naming check that produced a Problem.
type Rule string

const (
	// RulePascalCase reports a definition name that is not PascalCase.
	RulePascalCase Rule = "pascal-case"

	// RuleIDMismatch reports an Id that differs from the kebab-case
	// derivation of the definition name.
	RuleIDMismatch Rule = "id-mismatch"
)

// Problem is a single naming violation. Problems are data, not errors:
// validation collects them and never aborts on one.
type Problem struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	Rule    Rule   `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`

	// ID and Expected are set for RuleIDMismatch only.
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// String renders the problem as "<file>:<line>: <message>".
func (p Problem) String() string {
	return fmt.Sprintf("%s:%d: %s", p.File, p.Line, p.Message)
}
