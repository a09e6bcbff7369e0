package domain

import (
	"fmt"
	"unicode/utf8"
)

// Default length limits for card sides, measured in runes.
const (
	DefaultMaxTermLength       = 100
	DefaultMaxDefinitionLength = 500
)

// Limits bounds the length of card sides. A zero limit disables the check.
type Limits struct {
	MaxTermLength       int
	MaxDefinitionLength int
}

// DefaultLimits returns the standard side length limits.
func DefaultLimits() Limits {
	return Limits{
		MaxTermLength:       DefaultMaxTermLength,
		MaxDefinitionLength: DefaultMaxDefinitionLength,
	}
}

// Issue describes a problem with a card that does not prevent it from being
// studied.
type Issue struct {
	Index   int    `json:"index"`
	Term    string `json:"term"`
	Problem string `json:"problem"`
}

func (i Issue) String() string {
	return fmt.Sprintf("card %d (%q): %s", i.Index+1, i.Term, i.Problem)
}

// Validate reports an Issue for each empty or over-long side in cards.
func Validate(cards []Flashcard, limits Limits) []Issue {
	var issues []Issue

	for i, card := range cards {
		switch err := card.Validate(); err {
		case ErrEmptyTerm:
			issues = append(issues, Issue{Index: i, Term: card.Term, Problem: "empty term"})
		case ErrEmptyDefinition:
			issues = append(issues, Issue{Index: i, Term: card.Term, Problem: "empty definition"})
		}

		if n := utf8.RuneCountInString(card.Term); limits.MaxTermLength > 0 && n > limits.MaxTermLength {
			issues = append(issues, Issue{
				Index:   i,
				Term:    card.Term,
				Problem: fmt.Sprintf("term too long (%d > %d)", n, limits.MaxTermLength),
			})
		}

		if n := utf8.RuneCountInString(card.Definition); limits.MaxDefinitionLength > 0 && n > limits.MaxDefinitionLength {
			issues = append(issues, Issue{
				Index:   i,
				Term:    card.Term,
				Problem: fmt.Sprintf("definition too long (%d > %d)", n, limits.MaxDefinitionLength),
			})
		}
	}

	return issues
}
