package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/crablang/internal/domain"
	"github.com/phrazzld/crablang/internal/events"
)

// Result is the outcome of one card in a session. Input is nil for cards
// that were revealed rather than answered.
type Result struct {
	Index   int              `json:"index"`
	Card    domain.Flashcard `json:"card"`
	Correct bool             `json:"correct"`
	Input   *string          `json:"input,omitempty"`
}

// Score is the running tally of a quiz.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Incorrect returns the number of wrong answers.
func (s Score) Incorrect() int {
	return s.Total - s.Correct
}

// Percent returns Correct as a percentage of Total, or 0 when nothing was
// answered.
func (s Score) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Total)
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d (%.0f%%)", s.Correct, s.Total, s.Percent())
}

// Config configures a Session.
type Config struct {
	Mode Mode
	// Emitter receives session events. Nil discards them.
	Emitter events.EventEmitter
	Logger  *slog.Logger
}

// Session is a single sequential pass over a deck.
type Session struct {
	id      uuid.UUID
	deck    *domain.Deck
	mode    Mode
	state   State
	index   int
	results []Result
	score   Score
	emitter events.EventEmitter
	logger  *slog.Logger
}

// New creates a session over deck. The deck's orientation (reversed or not)
// decides which side is the prompt.
func New(deck *domain.Deck, cfg Config) (*Session, error) {
	if deck == nil || deck.Len() == 0 {
		return nil, domain.ErrEmptyDeck
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}

	emitter := cfg.Emitter
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	return &Session{
		id:      id,
		deck:    deck,
		mode:    cfg.Mode,
		state:   StateReady,
		emitter: emitter,
		logger:  logger.With("component", "session", "session_id", id, "mode", cfg.Mode),
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Len returns the number of cards in the session.
func (s *Session) Len() int { return s.deck.Len() }

// Position returns the zero-based index of the current card.
func (s *Session) Position() int { return s.index }

// Start presents the first card.
func (s *Session) Start(ctx context.Context) (domain.Flashcard, error) {
	if s.state != StateReady {
		return domain.Flashcard{}, fmt.Errorf("%w: start in state %s", ErrWrongState, s.state)
	}
	s.logger.Debug("session started", "cards", s.deck.Len(), "reversed", s.deck.IsReversed())
	return s.present(ctx)
}

// Current returns the card being reviewed.
func (s *Session) Current() (domain.Flashcard, error) {
	if s.state == StateFinished {
		return domain.Flashcard{}, ErrSessionDone
	}
	return s.deck.At(s.index)
}

// Reveal acknowledges the current study card and returns it so the caller
// can show its definition.
func (s *Session) Reveal(ctx context.Context) (domain.Flashcard, error) {
	if s.mode != ModeStudy {
		return domain.Flashcard{}, fmt.Errorf("%w: reveal in %s mode", ErrWrongMode, s.mode)
	}
	card, err := s.answerable()
	if err != nil {
		return domain.Flashcard{}, err
	}

	res := Result{Index: s.index, Card: card}
	s.results = append(s.results, res)
	s.state = StateAnswered
	return card, s.emit(ctx, events.TypeCardAnswered, res)
}

// Submit checks a typed answer against the current quiz card, records the
// result and updates the score.
func (s *Session) Submit(ctx context.Context, input string) (Result, error) {
	if s.mode != ModeQuiz {
		return Result{}, fmt.Errorf("%w: submit in %s mode", ErrWrongMode, s.mode)
	}
	card, err := s.answerable()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Index:   s.index,
		Card:    card,
		Correct: CheckAnswer(input, card.Definition),
		Input:   &input,
	}
	s.results = append(s.results, res)
	s.score.Total++
	if res.Correct {
		s.score.Correct++
	}
	s.state = StateAnswered
	return res, s.emit(ctx, events.TypeCardAnswered, res)
}

// Next advances past an answered card. It returns false once the last card
// has been answered, at which point the session is finished.
func (s *Session) Next(ctx context.Context) (bool, error) {
	if s.state != StateAnswered {
		return false, fmt.Errorf("%w: next in state %s", ErrWrongState, s.state)
	}
	if s.index+1 >= s.deck.Len() {
		return false, s.finish(ctx, true)
	}
	s.index++
	_, err := s.present(ctx)
	return true, err
}

// Quit ends the session before the last card. Quitting a finished session
// is a no-op.
func (s *Session) Quit(ctx context.Context) error {
	if s.state == StateFinished {
		return nil
	}
	return s.finish(ctx, false)
}

// Done reports whether the session has finished.
func (s *Session) Done() bool { return s.state == StateFinished }

// Score returns the quiz score so far. Study sessions always score 0/0.
func (s *Session) Score() Score { return s.score }

// Results returns a copy of the per-card results in order.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Missed returns the quiz results that were answered incorrectly.
func (s *Session) Missed() []Result {
	var out []Result
	for _, r := range s.results {
		if r.Input != nil && !r.Correct {
			out = append(out, r)
		}
	}
	return out
}

func (s *Session) answerable() (domain.Flashcard, error) {
	switch s.state {
	case StatePresented:
		return s.deck.At(s.index)
	case StateFinished:
		return domain.Flashcard{}, ErrSessionDone
	}
	return domain.Flashcard{}, fmt.Errorf("%w: answer in state %s", ErrWrongState, s.state)
}

func (s *Session) present(ctx context.Context) (domain.Flashcard, error) {
	card, err := s.deck.At(s.index)
	if err != nil {
		return domain.Flashcard{}, err
	}
	s.state = StatePresented
	return card, s.emit(ctx, events.TypeCardPresented, presentedPayload{Index: s.index, Term: card.Term})
}

func (s *Session) finish(ctx context.Context, completed bool) error {
	s.state = StateFinished
	s.logger.Debug("session finished", "completed", completed, "answered", len(s.results))
	return s.emit(ctx, events.TypeSessionCompleted, completedPayload{
		Mode:      s.mode,
		Cards:     s.deck.Len(),
		Reviewed:  len(s.results),
		Score:     s.score,
		Completed: completed,
	})
}

func (s *Session) emit(ctx context.Context, eventType string, payload interface{}) error {
	event, err := events.NewSessionEvent(s.id, eventType, payload)
	if err != nil {
		return fmt.Errorf("failed to create %s event: %w", eventType, err)
	}
	return s.emitter.EmitEvent(ctx, event)
}

type presentedPayload struct {
	Index int    `json:"index"`
	Term  string `json:"term"`
}

type completedPayload struct {
	Mode      Mode  `json:"mode"`
	Cards     int   `json:"cards"`
	Reviewed  int   `json:"reviewed"`
	Score     Score `json:"score"`
	Completed bool  `json:"completed"`
}
