// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fsh

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Decode converts raw file content to text. A leading UTF-8 byte order mark
// is stripped and invalid byte sequences are dropped; Decode never fails.
func Decode(raw []byte) string {
	t := transform.Chain(
		unicode.UTF8BOM.NewDecoder(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	s, _, err := transform.String(t, string(raw))
	if err != nil {
		return strings.ToValidUTF8(strings.TrimPrefix(string(raw), "\ufeff"), "")
	}
	return s
}
