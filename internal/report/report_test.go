// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fsh-lint/internal/scan"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

func failingResult() *scan.Result {
	return &scan.Result{
		Root:      "input",
		Extension: ".fsh",
		Files:     []string{"input/a.fsh"},
		Definitions: []types.Definition{
			{Kind: types.KindProfile, Name: "myProfile", File: "input/a.fsh", Line: 1},
			{Kind: types.KindProfile, Name: "FooBar", ID: "foobar", File: "input/a.fsh", Line: 4},
		},
		Problems: []types.Problem{
			{File: "input/a.fsh", Line: 1, Kind: types.KindProfile, Name: "myProfile", Rule: types.RulePascalCase,
				Message: "Profile 'myProfile' is not PascalCase"},
			{File: "input/a.fsh", Line: 4, Kind: types.KindProfile, Name: "FooBar", Rule: types.RuleIDMismatch,
				ID: "foobar", Expected: "foo-bar", Message: "Id 'foobar' does not match expected 'foo-bar' for FooBar"},
		},
	}
}

func TestWriteText(t *testing.T) {
	tests := []struct {
		name   string
		result *scan.Result
		want   string
	}{
		{
			name:   "problems then summary",
			result: failingResult(),
			want: "input/a.fsh:1: Profile 'myProfile' is not PascalCase\n" +
				"input/a.fsh:4: Id 'foobar' does not match expected 'foo-bar' for FooBar\n" +
				"\n" +
				"Validation failed (2 problem(s)).\n",
		},
		{
			name: "passing run",
			result: &scan.Result{
				Extension:   ".fsh",
				Files:       []string{"input/a.fsh"},
				Definitions: []types.Definition{{Kind: types.KindProfile, Name: "A"}},
			},
			want: "All checks passed (1 definitions scanned).\n",
		},
		{
			name:   "no files",
			result: &scan.Result{Extension: ".fsh"},
			want:   "No .fsh files found - nothing to do.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.result, types.FormatText))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, failingResult(), types.FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.False(t, doc.Passed)
	assert.Equal(t, 1, doc.Files)
	assert.Equal(t, 2, doc.Definitions)
	require.Len(t, doc.Problems, 2)
	assert.Equal(t, "foo-bar", doc.Problems[1].Expected)
	assert.Contains(t, buf.String(), `"rule": "id-mismatch"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &scan.Result{Root: "input", Extension: ".fsh"}, types.FormatYAML))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.True(t, doc.Passed)
	assert.Equal(t, "input", doc.Root)
	assert.Contains(t, buf.String(), "problems: []")
}

func TestWriteUnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, &scan.Result{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

// failOnWrite fails only its nth write.
type failOnWrite struct {
	n, calls int
}

func (f *failOnWrite) Write(p []byte) (int, error) {
	f.calls++
	if f.calls == f.n {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestWriteTextReportsWriteErrors(t *testing.T) {
	// Two problem lines, the blank separator, then the summary.
	for n := 1; n <= 4; n++ {
		err := Write(&failOnWrite{n: n}, failingResult(), types.FormatText)
		assert.Error(t, err, "write %d", n)
	}
}
