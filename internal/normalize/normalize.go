package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Legal-entity suffix tokens removed before comparison. Word-boundary
// matched so "Pty Ltd" disappears but "Incredible" survives.
var reEntitySuffix = regexp.MustCompile(`\b(pty|ltd|limited|llc|inc|incorporated|corp|corporation)\b`)

// Text lowercases a free-text field, strips legal-entity suffixes and
// punctuation, and collapses whitespace. The result is stable: running
// Text over its own output returns the same string.
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(raw))
	s = reEntitySuffix.ReplaceAllString(s, "")

	// Drop anything that is neither alphanumeric nor whitespace
	b := strings.Builder{}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// IsBlank reports whether a field is effectively empty after normalization.
func IsBlank(raw string) bool {
	return Text(raw) == ""
}
