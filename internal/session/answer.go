package session

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAnswer trims s, composes it to NFC and applies Unicode case
// folding, so that visually identical answers compare equal.
func NormalizeAnswer(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// CheckAnswer reports whether input matches expected, ignoring case and
// surrounding whitespace.
func CheckAnswer(input, expected string) bool {
	return NormalizeAnswer(input) == NormalizeAnswer(expected)
}
