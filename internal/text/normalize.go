// Package text holds the message normalization used by the classifier and the
// input hygiene applied at the HTTP boundary.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases s, removes punctuation and collapses runs of whitespace
// into single spaces. The empty string normalizes to itself.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Casers are stateful, so one is built per call.
	lowered := cases.Lower(language.Und).String(s)

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, lowered)

	return strings.Join(strings.Fields(stripped), " ")
}

// Words splits the normalized form of s into words.
func Words(s string) []string {
	return strings.Fields(Normalize(s))
}

// ContainsAny reports whether normalized contains any of the phrases as a substring.
func ContainsAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// HasWord reports whether word appears as a whole word in words.
func HasWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
