// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fsh-lint/internal/fsh"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

func def(kind types.Kind, name, id string, line int) types.Definition {
	return types.Definition{Kind: kind, Name: name, ID: id, File: "input/a.fsh", Line: line}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		defs      []types.Definition
		whitelist []string
		skip      []string
		want      []string
	}{
		{
			name: "compliant definitions",
			defs: []types.Definition{
				def(types.KindProfile, "MyProfile", "my-profile", 1),
				def(types.KindCodeSystem, "MedComCodeSystem", "medcom-code-system", 5),
				def(types.KindValueSet, "NoId", "", 9),
			},
			whitelist: []string{"MedCom"},
			want:      []string{},
		},
		{
			name: "name not PascalCase without id",
			defs: []types.Definition{def(types.KindProfile, "myProfile", "", 3)},
			want: []string{"input/a.fsh:3: Profile 'myProfile' is not PascalCase"},
		},
		{
			name:      "id mismatch",
			defs:      []types.Definition{def(types.KindCodeSystem, "MedComCodeSystem", "med-com-code-system", 2)},
			whitelist: []string{"MedCom"},
			want: []string{
				"input/a.fsh:2: Id 'med-com-code-system' does not match expected 'medcom-code-system' for MedComCodeSystem",
			},
		},
		{
			name: "both problems in order",
			defs: []types.Definition{def(types.KindValueSet, "my_codes", "my-codes", 7)},
			want: []string{
				"input/a.fsh:7: ValueSet 'my_codes' is not PascalCase",
				"input/a.fsh:7: Id 'my-codes' does not match expected 'my-_codes' for my_codes",
			},
		},
		{
			name: "skip list is case-insensitive",
			defs: []types.Definition{
				def(types.KindCodeSystem, "medcom-test", "wrong", 1),
				def(types.KindProfile, "Tester", "nope", 4),
			},
			skip: []string{"CodeSystem: medcom-test", "profile:tester"},
			want: []string{},
		},
		{
			name: "skip applies to the exact kind only",
			defs: []types.Definition{def(types.KindValueSet, "tester", "", 1)},
			skip: []string{"Profile: tester"},
			want: []string{"input/a.fsh:1: ValueSet 'tester' is not PascalCase"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strings(Validate(tt.defs, tt.whitelist, NewSkipSet(tt.skip)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateProblemFields(t *testing.T) {
	problems := Validate([]types.Definition{def(types.KindProfile, "FooBar", "foobar", 12)}, nil, nil)
	require.Len(t, problems, 1)

	p := problems[0]
	assert.Equal(t, types.RuleIDMismatch, p.Rule)
	assert.Equal(t, "foobar", p.ID)
	assert.Equal(t, "foo-bar", p.Expected)
	assert.Equal(t, 12, p.Line)
	assert.Equal(t, types.KindProfile, p.Kind)
}

func TestNewSkipSet(t *testing.T) {
	set := NewSkipSet([]string{"CodeSystem: MedCom-Test", "  ValueSet :NextUp ", "no colon here"})

	assert.Len(t, set, 2)
	assert.Contains(t, set, "codesystem: medcom-test")
	assert.Contains(t, set, "valueset: nextup")
}

func TestValidateExtractedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"non-PascalCase profile without id", "Profile: myProfile\nParent: Patient\n", 1},
		{"compliant profile", "Profile: MyProfile\nId: my-profile\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := fsh.Extract(tt.content, "input/p.fsh")
			assert.Len(t, Validate(defs, nil, NewSkipSet(nil)), tt.want)
		})
	}
}
