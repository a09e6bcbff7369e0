package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/crablang/internal/platform/logger"
)

// DefaultQuitCommand ends a session early when typed at a prompt.
const DefaultQuitCommand = ":q"

// Runner drives a Session over a line-oriented terminal: it writes prompts
// to out and reads one line of input per card from in.
type Runner struct {
	in     io.Reader
	out    io.Writer
	quit   string
	logger *slog.Logger
}

// NewRunner creates a Runner. An empty quitCommand disables quitting from
// the prompt. A nil l makes Run use the logger carried by its context.
func NewRunner(in io.Reader, out io.Writer, quitCommand string, l *slog.Logger) *Runner {
	return &Runner{
		in:     in,
		out:    out,
		quit:   quitCommand,
		logger: l,
	}
}

// Run presents every card of s in order and prints a summary at the end. It
// returns ErrInputClosed if input ends first, or ctx.Err() if ctx is
// cancelled while waiting for input. In both cases the session is quit and
// the partial summary is still printed.
func (r *Runner) Run(ctx context.Context, s *Session) error {
	log := logger.FromContext(ctx)
	if r.logger != nil {
		log = r.logger
	}
	log = log.With("component", "runner", "session_id", s.ID())

	// The reader goroutine stops once Run returns
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := r.scanLines(readCtx)

	card, err := s.Start(ctx)
	if err != nil {
		return err
	}

	r.header(s)

	for {
		r.printf("\n[%d/%d] %s\n", s.Position()+1, s.Len(), card.Term)

		if s.Mode() == ModeStudy {
			r.printf("(press Enter to reveal) ")
		} else {
			r.printf("Your answer: ")
		}

		input, err := r.readLine(ctx, lines)
		if err != nil {
			r.printf("\n")
			log.Debug("session aborted", "reason", err, "position", s.Position())
			return r.abort(ctx, s, log, err)
		}

		if r.quit != "" && strings.TrimSpace(input) == r.quit {
			if err := s.Quit(ctx); err != nil {
				return err
			}
			break
		}

		if err := r.answer(ctx, s, input); err != nil {
			return err
		}

		more, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if card, err = s.Current(); err != nil {
			return err
		}
	}

	r.summary(s)
	return nil
}

func (r *Runner) answer(ctx context.Context, s *Session, input string) error {
	if s.Mode() == ModeStudy {
		card, err := s.Reveal(ctx)
		if err != nil {
			return err
		}
		r.printf("  => %s\n", card.Definition)
		return nil
	}

	res, err := s.Submit(ctx, input)
	if err != nil {
		return err
	}
	if res.Correct {
		r.printf("  Correct!\n")
	} else {
		r.printf("  Incorrect. Answer: %s\n", res.Card.Definition)
	}
	r.printf("  Score: %s\n", s.Score())
	return nil
}

func (r *Runner) abort(ctx context.Context, s *Session, log *slog.Logger, cause error) error {
	if err := s.Quit(context.WithoutCancel(ctx)); err != nil {
		log.Warn("failed to quit session", "error", err)
	}
	r.summary(s)
	return cause
}

func (r *Runner) header(s *Session) {
	title := "Study"
	if s.Mode() == ModeQuiz {
		title = "Quiz"
	}
	r.printf("%s mode: %d cards", title, s.Len())
	if r.quit != "" {
		r.printf(" (type %s to quit)", r.quit)
	}
	r.printf("\n")
}

func (r *Runner) summary(s *Session) {
	r.printf("\n")
	if s.Mode() == ModeStudy {
		r.printf("Reviewed %d of %d cards.\n", len(s.Results()), s.Len())
		return
	}

	score := s.Score()
	r.printf("Final score: %s\n", score)
	if answered := score.Total; answered < s.Len() {
		r.printf("Answered %d of %d cards.\n", answered, s.Len())
	}

	missed := s.Missed()
	if len(missed) == 0 {
		return
	}
	r.printf("Missed:\n")
	for _, res := range missed {
		r.printf("  %s => %s (you said: %q)\n", res.Card.Term, res.Card.Definition, *res.Input)
	}
}

func (r *Runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

type lineResult struct {
	text string
	err  error
}

// scanLines reads lines from r.in on a separate goroutine so that a blocked
// read does not prevent cancellation. The channel is closed after the first
// error or EOF.
func (r *Runner) scanLines(ctx context.Context) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case ch <- lineResult{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case ch <- lineResult{err: err}:
		case <-ctx.Done():
		}
	}()
	return ch
}

func (r *Runner) readLine(ctx context.Context, lines <-chan lineResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lines:
		if !ok || res.err == io.EOF {
			return "", ErrInputClosed
		}
		if res.err != nil {
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return res.text, nil
	}
}
