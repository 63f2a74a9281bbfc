package usecases

import (
	"strings"
	"unicode/utf8"
)

// NormalizeName case-folds ASCII letters to lower case. Non-ASCII code
// points (emoji names) are opaque and pass through untouched, matching the
// registry's case-insensitivity rules.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// NameLength counts a name's length in code points, so a four-emoji name is
// four characters for pricing and minimum-length checks.
func NameLength(name string) int {
	return utf8.RuneCountInString(name)
}
