package query

import (
	"regexp"
	"strings"
)

var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases text and collapses every run of characters other than
// ASCII letters and digits into a single space. The result is trimmed, so
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	return strings.TrimSpace(nonAlphanumericRun.ReplaceAllString(strings.ToLower(text), " "))
}

// compactKey lowercases s and drops every non-alphanumeric character.
func compactKey(s string) string {
	return nonAlphanumericRun.ReplaceAllString(strings.ToLower(s), "")
}
