package domain

import "strings"

// Flashcard is an immutable term/definition pair. A card's identity is its
// position in the deck it was loaded into.
type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// NewFlashcard trims both sides and returns the card, or an error if either
// side is empty.
func NewFlashcard(term, definition string) (Flashcard, error) {
	card := Flashcard{
		Term:       strings.TrimSpace(term),
		Definition: strings.TrimSpace(definition),
	}

	if err := card.Validate(); err != nil {
		return Flashcard{}, err
	}

	return card, nil
}

// Validate checks that both sides are non-empty.
func (c Flashcard) Validate() error {
	if strings.TrimSpace(c.Term) == "" {
		return ErrEmptyTerm
	}

	if strings.TrimSpace(c.Definition) == "" {
		return ErrEmptyDefinition
	}

	return nil
}

// Swapped returns the card with term and definition exchanged.
func (c Flashcard) Swapped() Flashcard {
	return Flashcard{Term: c.Definition, Definition: c.Term}
}
