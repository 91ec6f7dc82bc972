// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fsh

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/fsh-lint/pkg/types"
)

var (
	headerRe = regexp.MustCompile(`^\s*(` + kindAlternation() + `):\s+(\S+)`)
	idRe     = regexp.MustCompile(`^\s*Id:\s+(\S+)`)
)

func kindAlternation() string {
	names := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		names[i] = regexp.QuoteMeta(string(k))
	}
	return strings.Join(names, "|")
}

// lineEndings maps CRLF and lone CR line breaks to LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Extract returns the definitions declared in text, in the order their
// headers appear. Lines may end in LF, CRLF or CR. file is recorded on each
// definition for reporting.
func Extract(text, file string) []types.Definition {
	lines := strings.Split(lineEndings.Replace(text), "\n")

	var defs []types.Definition
	for i := 0; i < len(lines); {
		def, next, ok := nextDefinition(lines, i, file)
		if !ok {
			break
		}
		defs = append(defs, def)
		i = next
	}
	return defs
}

// Load reads, decodes and extracts the definitions of one file.
func Load(path string) ([]types.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(Decode(data), path), nil
}

// nextDefinition finds the first header at or after from. It returns the
// definition that header opens and the index of the line where its body
// ends: the next header, or len(lines).
func nextDefinition(lines []string, from int, file string) (types.Definition, int, bool) {
	for i := from; i < len(lines); i++ {
		kind, name, ok := parseHeader(lines[i])
		if !ok {
			continue
		}

		def := types.Definition{Kind: kind, Name: name, File: file, Line: i + 1}
		j := i + 1
		for ; j < len(lines); j++ {
			if _, _, ok := parseHeader(lines[j]); ok {
				break
			}
			if def.ID != "" {
				continue
			}
			if id, ok := parseID(lines[j]); ok {
				def.ID = id
			}
		}
		return def, j, true
	}
	return types.Definition{}, len(lines), false
}

func parseHeader(line string) (types.Kind, string, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return types.Kind(m[1]), m[2], true
}

func parseID(line string) (string, bool) {
	m := idRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
