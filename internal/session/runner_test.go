package session

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crablang/internal/platform/logger"
)

func runSession(t *testing.T, mode Mode, input string, reverse bool) (*Session, string, error) {
	t.Helper()

	deck := testDeck(t)
	if reverse {
		deck = deck.Reversed()
	}
	s := newTestSession(t, deck, mode, nil)

	var out bytes.Buffer
	err := NewRunner(strings.NewReader(input), &out, DefaultQuitCommand, testLogger(t)).Run(context.Background(), s)
	return s, out.String(), err
}

func TestRunnerQuizPerfect(t *testing.T) {
	t.Parallel()

	s, out, err := runSession(t, ModeQuiz, "a sweet red fruit\ncollection of written pages\nSMALL FELINE\n", false)
	require.NoError(t, err)

	assert.True(t, s.Done())
	assert.Equal(t, Score{Correct: 3, Total: 3}, s.Score())
	assert.Contains(t, out, "Quiz mode: 3 cards (type :q to quit)")
	assert.Contains(t, out, "[1/3] apple")
	assert.Contains(t, out, "[3/3] cat")
	assert.Contains(t, out, "Score: 2/2 (100%)")
	assert.Contains(t, out, "Final score: 3/3 (100%)")
	assert.NotContains(t, out, "Missed:")
}

func TestRunnerQuizMixed(t *testing.T) {
	t.Parallel()

	s, out, err := runSession(t, ModeQuiz, "a sweet red fruit\nnewspaper\nsmall feline\n", false)
	require.NoError(t, err)

	assert.Equal(t, Score{Correct: 2, Total: 3}, s.Score())
	assert.Contains(t, out, "Incorrect. Answer: Collection of written pages")
	assert.Contains(t, out, "Final score: 2/3 (67%)")
	assert.Contains(t, out, `book => Collection of written pages (you said: "newspaper")`)
}

func TestRunnerQuizReversed(t *testing.T) {
	t.Parallel()

	s, out, err := runSession(t, ModeQuiz, "apple\nbook\ndog\n", true)
	require.NoError(t, err)

	assert.Equal(t, Score{Correct: 2, Total: 3}, s.Score())
	assert.Contains(t, out, "[1/3] A sweet red fruit")
	assert.Contains(t, out, "Incorrect. Answer: cat")
}

func TestRunnerStudy(t *testing.T) {
	t.Parallel()

	s, out, err := runSession(t, ModeStudy, "\n\nanything\n", false)
	require.NoError(t, err)

	assert.True(t, s.Done())
	assert.Contains(t, out, "Study mode: 3 cards")
	assert.Contains(t, out, "=> A sweet red fruit")
	assert.Contains(t, out, "=> Small feline")
	assert.Contains(t, out, "Reviewed 3 of 3 cards.")
	assert.NotContains(t, out, "Score")
}

func TestRunnerQuitCommand(t *testing.T) {
	t.Parallel()

	s, out, err := runSession(t, ModeQuiz, "a sweet red fruit\n :q \n", false)
	require.NoError(t, err)

	assert.True(t, s.Done())
	assert.Equal(t, Score{Correct: 1, Total: 1}, s.Score())
	assert.Contains(t, out, "Answered 1 of 3 cards.")
}

func TestRunnerInputClosed(t *testing.T) {
	t.Parallel()

	s, out, err := runSession(t, ModeQuiz, "wrong", false)
	assert.ErrorIs(t, err, ErrInputClosed)

	assert.True(t, s.Done())
	assert.Equal(t, Score{Correct: 0, Total: 1}, s.Score())
	assert.Contains(t, out, "Final score: 0/1 (0%)")
}

func TestRunnerCancelled(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, testDeck(t), ModeStudy, nil)

	// The pipe is never written, so the runner blocks until cancelled.
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewRunner(pr, &out, "", testLogger(t)).Run(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, s.Done())
	assert.Contains(t, out.String(), "Reviewed 0 of 3 cards.")
}

func TestRunnerLoggerFromContext(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, testDeck(t), ModeQuiz, nil)
	l, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), l)

	var out bytes.Buffer
	err := NewRunner(strings.NewReader(""), &out, DefaultQuitCommand, nil).Run(ctx, s)
	require.ErrorIs(t, err, ErrInputClosed)

	logger.AssertLogContains(t, buf, "session aborted")
	logger.AssertLogField(t, buf, "component", "runner")
	logger.AssertLogField(t, buf, "reason", ErrInputClosed.Error())
}

// TestRunnerStopsReader finishes a session with input left over and checks
// that the line reader goroutine exits.
func TestRunnerStopsReader(t *testing.T) {
	before := runtime.NumGoroutine()

	input := "\n\n\n" + strings.Repeat("unread line\n", 100)
	s, _, err := runSession(t, ModeStudy, input, false)
	require.NoError(t, err)
	require.True(t, s.Done())

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}
