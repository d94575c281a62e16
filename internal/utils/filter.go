package utils

import (
	"unicode"
	"unicode/utf8"
)

// IsIdentRune checks if a rune may appear in an identifier prefix.
// Dots are allowed so attribute chains like "os.pa" survive validation.
func IsIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsRepetitive checks if a string consists of one character repeated
// 3+ times (e.g., "aaa", "____")
func IsRepetitive(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	var first rune
	for i, r := range s {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}

// IsValidPrefix checks if a prefix should be looked up in the index.
// Returns false for strings outside the length bounds, strings that are
// only numbers, repetitive strings like "dddd", strings starting with a
// digit, and strings with characters that cannot appear in identifiers.
func IsValidPrefix(s string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(s)
	if n < minLen {
		return false
	}
	if maxLen > 0 && n > maxLen {
		return false
	}

	if IsOnlyNumbers(s) {
		return false
	}

	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !IsIdentRune(r) {
			return false
		}
	}

	return !IsRepetitive(s)
}
