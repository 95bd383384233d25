package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s used for every case-insensitive
// comparison in the matcher.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs anywhere in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// ContainsToken reports whether needle occurs in haystack bounded on both sides
// by a non-alphanumeric rune or the string edge, ignoring case.
func ContainsToken(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	h := []rune(Fold(haystack))
	n := []rune(Fold(needle))
	for i := 0; i+len(n) <= len(h); i++ {
		if !runesEqual(h[i:i+len(n)], n) {
			continue
		}
		if i > 0 && isAlphaNumeric(h[i-1]) {
			continue
		}
		if end := i + len(n); end < len(h) && isAlphaNumeric(h[end]) {
			continue
		}
		return true
	}
	return false
}

// AlphaNumeric drops every rune that is not a letter or digit. Case is kept.
func AlphaNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if isAlphaNumeric(r) {
			return r
		}
		return -1
	}, s)
}

// Digits keeps only the decimal digits of s.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// IsNumeric reports whether s is non-empty and made of ASCII digits only.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Tokenize splits on whitespace and drops empty tokens.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
