// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint applies the naming rules to extracted FSH definitions.
package lint

import (
	"fmt"
	"strings"

	"github.com/pdiddy/fsh-lint/internal/naming"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

// SkipSet holds the normalized "<kind>: <name>" keys of definitions that
// are exempt from every check.
type SkipSet map[string]struct{}

// NewSkipSet builds a SkipSet from configuration entries such as
// "CodeSystem: medcom-test". Entries are lowercased and the space around
// the colon is normalized; entries without a colon are ignored.
func NewSkipSet(entries []string) SkipSet {
	set := make(SkipSet, len(entries))
	for _, e := range entries {
		kind, name, ok := strings.Cut(e, ":")
		if !ok {
			continue
		}
		set[skipKey(strings.TrimSpace(kind), strings.TrimSpace(name))] = struct{}{}
	}
	return set
}

// Contains reports whether the definition is exempt.
func (s SkipSet) Contains(def types.Definition) bool {
	_, ok := s[skipKey(string(def.Kind), def.Name)]
	return ok
}

func skipKey(kind, name string) string {
	return strings.ToLower(kind) + ": " + strings.ToLower(name)
}

// Validate checks each definition in order and returns the problems found.
// A definition can produce a PascalCase problem, an id mismatch, both, or
// neither. Skipped definitions produce nothing.
func Validate(defs []types.Definition, whitelist []string, skip SkipSet) []types.Problem {
	var problems []types.Problem
	for _, d := range defs {
		if skip.Contains(d) {
			continue
		}

		if !naming.IsPascalCase(d.Name) {
			problems = append(problems, types.Problem{
				File:    d.File,
				Line:    d.Line,
				Kind:    d.Kind,
				Name:    d.Name,
				Rule:    types.RulePascalCase,
				Message: fmt.Sprintf("%s '%s' is not PascalCase", d.Kind, d.Name),
			})
		}

		if d.ID == "" {
			continue
		}
		if expected := naming.KebabFromPascal(d.Name, whitelist); d.ID != expected {
			problems = append(problems, types.Problem{
				File:     d.File,
				Line:     d.Line,
				Kind:     d.Kind,
				Name:     d.Name,
				Rule:     types.RuleIDMismatch,
				ID:       d.ID,
				Expected: expected,
				Message:  fmt.Sprintf("Id '%s' does not match expected '%s' for %s", d.ID, expected, d.Name),
			})
		}
	}
	return problems
}

// Strings formats problems as "<file>:<line>: <message>" lines.
func Strings(problems []types.Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.String()
	}
	return out
}
