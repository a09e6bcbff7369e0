// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEncoding is returned when a file's bytes cannot be decoded into text
	// by any of the attempted encodings.
	ErrEncoding = errors.New("unable to decode file contents")

	// ErrFormatDetection is returned when no candidate delimiter describes
	// enough of a file's lines.
	ErrFormatDetection = errors.New("unable to detect file format")

	// ErrEmptyDeck is returned when parsing produced zero valid cards.
	ErrEmptyDeck = errors.New("deck contains no valid cards")

	// ErrEmptyTerm is returned when a card's term is empty after trimming.
	ErrEmptyTerm = errors.New("card term cannot be empty")

	// ErrEmptyDefinition is returned when a card's definition is empty after trimming.
	ErrEmptyDefinition = errors.New("card definition cannot be empty")

	// ErrIndexOutOfRange is returned when a deck position does not exist.
	ErrIndexOutOfRange = errors.New("card index out of range")
)
