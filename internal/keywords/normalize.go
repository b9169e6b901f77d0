package keywords

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on whitespace, commas, periods and
// hyphens. Empty tokens are dropped; no stemming is applied.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}

func isSeparator(r rune) bool {
	switch r {
	case ',', '.', '-':
		return true
	}
	return unicode.IsSpace(r)
}
