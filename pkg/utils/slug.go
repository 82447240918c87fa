package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen. Uniqueness is enforced by the database,
// not here; callers append a suffix when the slug is already taken.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
