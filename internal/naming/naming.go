// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming implements the casing rules for FSH definition names:
// the PascalCase predicate and the kebab-case id derivation.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var pascalRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// IsPascalCase reports whether name is one ASCII uppercase letter followed
// by ASCII letters and digits only.
func IsPascalCase(name string) bool {
	return pascalRe.MatchString(name)
}

// KebabFromPascal derives the kebab-case id for a PascalCase name.
//
// The name is scanned left to right. Where a whitelist token matches at
// the cursor it is emitted, lowercased, as a single segment. Otherwise a
// segment starts with the character at the cursor and extends over the
// lowercase letters and digits that follow. Segments are joined with "-".
//
// When several tokens match at the same position the longest wins.
func KebabFromPascal(name string, whitelist []string) string {
	var segments []string
	i := 0
	for i < len(name) {
		if tok := matchToken(name[i:], whitelist); tok != "" {
			segments = append(segments, strings.ToLower(tok))
			i += len(tok)
			continue
		}

		start := i
		_, size := utf8.DecodeRuneInString(name[i:])
		i += size
		for i < len(name) {
			r, size := utf8.DecodeRuneInString(name[i:])
			if !unicode.IsLower(r) && !unicode.IsDigit(r) {
				break
			}
			i += size
		}
		segments = append(segments, strings.ToLower(name[start:i]))
	}
	return strings.Join(segments, "-")
}

// matchToken returns the longest whitelist token that prefixes s, or "".
func matchToken(s string, whitelist []string) string {
	best := ""
	for _, tok := range whitelist {
		if len(tok) > len(best) && strings.HasPrefix(s, tok) {
			best = tok
		}
	}
	return best
}
