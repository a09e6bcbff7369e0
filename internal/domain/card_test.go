package domain

import "testing"

func TestNewFlashcard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card, err := NewFlashcard("  apple ", "\tA sweet red fruit ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.Term != "apple" {
		t.Errorf("Expected term %q, got %q", "apple", card.Term)
	}

	if card.Definition != "A sweet red fruit" {
		t.Errorf("Expected definition %q, got %q", "A sweet red fruit", card.Definition)
	}

	// Test empty term
	_, err = NewFlashcard("   ", "definition")
	if err != ErrEmptyTerm {
		t.Errorf("Expected error %v, got %v", ErrEmptyTerm, err)
	}

	// Test empty definition
	_, err = NewFlashcard("term", "")
	if err != ErrEmptyDefinition {
		t.Errorf("Expected error %v, got %v", ErrEmptyDefinition, err)
	}
}

func TestFlashcardSwapped(t *testing.T) {
	t.Parallel()

	card := Flashcard{Term: "book", Definition: "Collection of written pages"}
	swapped := card.Swapped()

	if swapped.Term != card.Definition || swapped.Definition != card.Term {
		t.Errorf("Expected sides swapped, got %+v", swapped)
	}

	if swapped.Swapped() != card {
		t.Errorf("Expected double swap to restore %+v, got %+v", card, swapped.Swapped())
	}
}
