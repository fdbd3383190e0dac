package utils

import (
	"strings"
	"unicode"
)

// CountWords counts whitespace-separated words in text that contain at least
// one letter or digit. Stray punctuation ("-", "...") is not counted.
func CountWords(text string) int {
	count := 0
	for _, word := range strings.FieldsFunc(text, unicode.IsSpace) {
		if strings.IndexFunc(word, isWordRune) >= 0 {
			count++
		}
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
