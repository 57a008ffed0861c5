// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides text normalization helpers shared by the
// relevance scorer and the curated catalog importer.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
// Place names come back from the provider with mixed casing and the occasional
// diacritic ("Children's Clínica"), the scorer needs a stable form to match against.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// CollapseWhitespace reduces runs of whitespace to a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
