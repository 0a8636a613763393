// Package slug derives URL identifiers from human-entered names.
//
// A slug is the stable identity of a creator, genre, movie, series or
// episode. Two names that produce the same slug name the same entity.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlnumRun matches a maximal run of bytes outside [a-z0-9]. Multi-byte
	// runes fall inside the run, so non-ASCII letters are dropped rather than
	// transliterated.
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

	validSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make converts text to a slug: lower-case, every run of characters outside
// a-z and 0-9 collapsed to one hyphen, leading and trailing hyphens removed.
//
// Examples:
//   - "Neon Dreams!" -> "neon-dreams"
//   - "  -- Foo_Bar -- " -> "foo-bar"
//   - "Café Noir" -> "caf-noir"
//   - "!!!" -> ""
//
// An empty result is never a valid identifier; callers must reject it.
func Make(text string) string {
	s := strings.ToLower(text)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is a non-empty slug in canonical form,
// i.e. Make(s) == s.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}
