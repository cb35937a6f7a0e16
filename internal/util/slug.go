// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)

	// Decompose, strip combining marks, recompose. Turns "Café" into "Cafe".
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeSlug converts user input to a canonical URL slug.
// The slug is the source of truth for listing identity in URLs.
//
// Normalization rules:
//  1. Fold accented characters to their base form
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores, and slashes with dashes
//  4. Remove non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes
//  6. Trim leading/trailing dashes
//
// Examples:
//
//	"Café Crêpe"     → "cafe-crepe"
//	"slow_burn"      → "slow-burn"
//	"Tim's BBQ!"     → "tims-bbq"
//	"  multi   word " → "multi-word"
//	"--leading--"    → "leading"
func NormalizeSlug(input string) string {
	// 1. Fold accents
	s, _, err := transform.String(accentFolder, input)
	if err != nil {
		s = input
	}

	// 2. Trim and lowercase
	s = strings.ToLower(strings.TrimSpace(s))

	// 3. Replace word separators (spaces, underscores, slashes) with dashes
	s = wordSeparatorRe.ReplaceAllString(s, "-")

	// 4. Remove non-alphanumeric (except dashes)
	s = nonAlphanumericRe.ReplaceAllString(s, "")

	// 5. Collapse multiple dashes
	s = multipleDashRe.ReplaceAllString(s, "-")

	// 6. Trim leading/trailing dashes
	s = strings.Trim(s, "-")

	return s
}

// SlugVariantPattern returns an anchored, case-insensitive pattern matching a
// base slug and its numbered variants: "cafe", "cafe-1", "cafe-2", ...
// Used to count existing slugs when picking a unique suffix.
func SlugVariantPattern(base string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(` + regexp.QuoteMeta(base) + `)((-[0-9]+)?)$`)
}
