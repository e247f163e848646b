package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the input and collapses every non-alphanumeric run into a
// single hyphen, matching how catalog slugs are generated from names.
func Make(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	lastHyphen := true // trim leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
