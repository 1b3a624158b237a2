// Package strcase converts Go identifiers to the snake_case keys used in
// JSON error payloads.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts s to lower snake_case, keeping initialisms together:
// "PeriodSec" becomes "period_sec" and "HTTPServer" becomes "http_server".
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && wordBoundary(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// wordBoundary reports whether the upper-case rune at i starts a new word.
func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// End of an initialism: "HTTPServer" splits before the 'S'.
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
