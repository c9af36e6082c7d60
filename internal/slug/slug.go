// Package slug implements WordPress-style permalink slugs: normalization of
// free text into URL-safe identifiers and disambiguation against slugs
// already in use.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Characters that never survive normalization.
	strippedRe = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// Underscores and whitespace runs become single hyphens.
	separatorRe = regexp.MustCompile(`[\s_]+`)
	// Runs of hyphens collapse into one.
	multiHyphenRe = regexp.MustCompile(`-+`)

	validRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Normalize converts arbitrary text into a URL-friendly slug: lowercase
// ASCII letters, digits and single interior hyphens. It returns the empty
// string when the input contains no retainable characters; callers decide
// how to handle that (the API layer falls back to a generated identifier).
// Normalize is idempotent for any non-empty result.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = strippedRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, "-")
	s = multiHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EnsureUnique returns base unchanged when it is not among the existing
// slugs; otherwise it returns the first free "base-N" with N counting up
// from 2. The result is a best-effort suggestion, not a reservation: the
// caller must still rely on the storage-level unique constraint.
func EnsureUnique(base string, existing map[string]bool) string {
	if !existing[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !existing[candidate] {
			return candidate
		}
	}
}

// IsValid reports whether s is a well-formed slug.
func IsValid(s string) bool {
	return validRe.MatchString(s)
}

// Permalink builds the full public URL for a slug. Posts and pages share
// the same root-level URL scheme; routing disambiguates at request time.
func Permalink(siteURL, s string) string {
	return strings.TrimRight(siteURL, "/") + "/" + s + "/"
}
