// Package domain contains the core flashcard entities and errors: cards,
// the ordered deck they are loaded into, and post-parse card checks. It does
// not know about file formats or terminals.
package domain
