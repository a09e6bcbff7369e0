package domain

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []Flashcard
		limits   Limits
		expected []string
	}{
		{
			name:   "valid cards",
			cards:  sampleCards(),
			limits: DefaultLimits(),
		},
		{
			name: "empty sides and long term",
			cards: []Flashcard{
				{Term: "apple", Definition: "red fruit"},
				{Term: "", Definition: "empty term"},
				{Term: "term", Definition: ""},
				{Term: strings.Repeat("x", 101), Definition: "too long term"},
			},
			limits:   DefaultLimits(),
			expected: []string{"empty term", "empty definition", "term too long (101 > 100)"},
		},
		{
			name:     "long definition",
			cards:    []Flashcard{{Term: "t", Definition: strings.Repeat("é", 501)}},
			limits:   DefaultLimits(),
			expected: []string{"definition too long (501 > 500)"},
		},
		{
			name:   "disabled limits",
			cards:  []Flashcard{{Term: strings.Repeat("x", 1000), Definition: "d"}},
			limits: Limits{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := Validate(tc.cards, tc.limits)
			if len(issues) != len(tc.expected) {
				t.Fatalf("Expected %d issues, got %d: %v", len(tc.expected), len(issues), issues)
			}
			for i, issue := range issues {
				if issue.Problem != tc.expected[i] {
					t.Errorf("Issue %d: expected %q, got %q", i, tc.expected[i], issue.Problem)
				}
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	t.Parallel()

	issue := Issue{Index: 2, Term: "cat", Problem: "empty definition"}
	if got := issue.String(); got != `card 3 ("cat"): empty definition` {
		t.Errorf("Unexpected issue string %q", got)
	}
}
