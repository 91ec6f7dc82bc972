// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Kind identifies the FSH keyword that declared a definition.
type Kind string

const (
	KindProfile    Kind = "Profile"
	KindCodeSystem Kind = "CodeSystem"
	KindValueSet   Kind = "ValueSet"
)

// Kinds lists the definition keywords the extractor recognizes, in the
// order they are tried.
var Kinds = []Kind{KindProfile, KindCodeSystem, KindValueSet}

// Definition is one declared artifact found in an FSH file.
// Definitions are values produced by extraction and are never modified.
type Definition struct {
	// Kind is the keyword that opened the definition.
	Kind Kind `json:"kind" yaml:"kind"`

	// Name is the first token after the keyword; expected to be PascalCase.
	Name string `json:"name" yaml:"name"`

	// ID is the value of the first Id: field in the definition body,
	// or empty when the body declares none.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// File is the path the definition was read from.
	File string `json:"file" yaml:"file"`

	// Line is the 1-based line of the definition header.
	Line int `json:"line" yaml:"line"`
}
