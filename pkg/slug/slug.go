package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlphaNumRegex = regexp.MustCompile(`[^a-z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize lowercases a string and collapses it into dash-separated
// URL-safe tokens. "John  O'Brien" -> "john-obrien".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphaNumRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateEntitySlug builds a profile slug from a person's name, their
// state code and a timestamp disambiguator, so that two "John Smith TX"
// profiles created at different moments never collide.
// Format: {first}-{last}-{state}-{unix}
// Example: "John" + "Smith" + "TX" -> "john-smith-tx-1693245000"
func GenerateEntitySlug(firstName, lastName, state string, now time.Time) string {
	parts := []string{}
	if p := Normalize(firstName); p != "" {
		parts = append(parts, p)
	}
	if p := Normalize(lastName); p != "" {
		parts = append(parts, p)
	}
	if p := Normalize(state); p != "" {
		parts = append(parts, p)
	}

	base := strings.Join(parts, "-")
	if base == "" {
		base = "profile"
	}

	return fmt.Sprintf("%s-%d", base, now.Unix())
}
