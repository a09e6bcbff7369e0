// Package session drives study and quiz passes over a deck.
//
// A Session is an explicit state machine owned by one caller. Each card moves
// from Presented to Answered (revealed in study mode, scored in quiz mode),
// and Next advances to the following card or finishes the session. Runner
// wires a Session to a line-oriented terminal; other front-ends can drive the
// Session directly.
package session
