package domain

import (
	"iter"
	"math/rand/v2"
)

// Deck is the ordered, in-memory collection of flashcards loaded from one
// file. The underlying sequence is never mutated; Reversed and Shuffled
// return new views.
type Deck struct {
	cards    []Flashcard
	order    []int
	reversed bool
}

// NewDeck creates a deck that preserves the order of cards. It returns
// ErrEmptyDeck if cards is empty and the first validation error if any card
// has an empty side.
func NewDeck(cards []Flashcard) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}

	owned := make([]Flashcard, len(cards))
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		owned[i] = c
	}

	order := make([]int, len(owned))
	for i := range order {
		order[i] = i
	}

	return &Deck{cards: owned, order: order}, nil
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.order)
}

// IsReversed reports whether the deck presents definitions as terms.
func (d *Deck) IsReversed() bool {
	return d.reversed
}

// At returns the card at position i, oriented according to the view.
func (d *Deck) At(i int) (Flashcard, error) {
	if i < 0 || i >= len(d.order) {
		return Flashcard{}, ErrIndexOutOfRange
	}
	return d.orient(d.cards[d.order[i]]), nil
}

// All iterates over the deck in view order, yielding position and card.
func (d *Deck) All() iter.Seq2[int, Flashcard] {
	return func(yield func(int, Flashcard) bool) {
		for i, idx := range d.order {
			if !yield(i, d.orient(d.cards[idx])) {
				return
			}
		}
	}
}

// Reversed returns a view of the same cards with term and definition
// swapped. Reversing a reversed view restores the original orientation.
func (d *Deck) Reversed() *Deck {
	return &Deck{cards: d.cards, order: d.order, reversed: !d.reversed}
}

// Shuffled returns a view of the same cards in a random order drawn from rng.
func (d *Deck) Shuffled(rng *rand.Rand) *Deck {
	order := make([]int, len(d.order))
	copy(order, d.order)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &Deck{cards: d.cards, order: order, reversed: d.reversed}
}

func (d *Deck) orient(c Flashcard) Flashcard {
	if d.reversed {
		return c.Swapped()
	}
	return c
}
