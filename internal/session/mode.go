package session

import (
	"fmt"
	"strings"
)

// Mode selects how cards are reviewed.
type Mode string

// Possible session modes
const (
	// ModeStudy reveals each definition after an acknowledgement. No scoring.
	ModeStudy Mode = "study"
	// ModeQuiz reads a typed answer for each card and keeps score.
	ModeQuiz Mode = "quiz"
)

// ParseMode converts a mode name to a Mode, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStudy:
		return ModeStudy, nil
	case ModeQuiz:
		return ModeQuiz, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// State is the position of a session in its per-card state machine.
type State int

// Session states
const (
	// StateReady means the session has not presented its first card yet.
	StateReady State = iota
	// StatePresented means the current card's prompt is showing.
	StatePresented
	// StateAnswered means the current card was revealed or answered.
	StateAnswered
	// StateFinished is terminal.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePresented:
		return "presented"
	case StateAnswered:
		return "answered"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
