// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsh reads FSH (FHIR Shorthand) source text and extracts the
// Profile, CodeSystem and ValueSet definitions it declares, together with
// their optional Id: field.
//
// The parser is line-oriented and deliberately shallow: it recognizes
// definition headers and Id: lines and ignores everything else.
package fsh
