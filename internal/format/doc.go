// Package format turns raw flashcard files into decks. It decodes the file
// bytes with best-effort encoding detection, picks the delimiter that best
// describes the file's lines, and splits each non-comment line into a
// term/definition pair. Line-level problems are collected as warnings and
// never abort a load.
package format
