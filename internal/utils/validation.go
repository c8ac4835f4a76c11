package utils

import "unicode"

// HasSpecialChar reports whether s contains at least one punctuation or
// symbol rune.
func HasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
