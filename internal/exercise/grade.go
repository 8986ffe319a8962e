package exercise

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize prepares an answer for comparison: surrounding whitespace is
// trimmed and the text is Unicode case-folded.
func Normalize(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// Grade reports whether the given answer matches the canonical one under
// normalization.
func Grade(given, canonical string) bool {
	return Normalize(given) == Normalize(canonical)
}
