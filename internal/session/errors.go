package session

import "errors"

// Errors returned by Session and Runner.
var (
	// ErrSessionDone is returned when an operation needs a current card but the
	// session has finished.
	ErrSessionDone = errors.New("session is finished")

	// ErrWrongMode is returned when a study operation is used in quiz mode or
	// the reverse.
	ErrWrongMode = errors.New("operation not available in this mode")

	// ErrWrongState is returned when an operation is called out of order, such
	// as answering a card twice or advancing before answering.
	ErrWrongState = errors.New("operation not valid in current state")

	// ErrInvalidMode is returned when a mode name is not recognised.
	ErrInvalidMode = errors.New("invalid session mode")

	// ErrInputClosed is returned when the input stream ends before the
	// session finishes.
	ErrInputClosed = errors.New("input closed before session finished")
)
