// Package tui runs a study or quiz session full-screen with tview.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/phrazzld/crablang/internal/platform/logger"
	"github.com/phrazzld/crablang/internal/session"
)

// App holds the UI state for one session.
type App struct {
	ctx         context.Context
	session     *session.Session
	quitCommand string
	logger      *slog.Logger

	revealed bool
	last     *session.Result
	finished bool
	err      error

	Application *tview.Application
	MainView    *tview.Flex
	CardView    *tview.TextView
	AnswerInput *tview.InputField
}

// NewApp creates an App over s and lays out its views. An empty quitCommand
// disables quitting by typing in quiz mode; Esc always quits. A nil l uses
// the logger carried by ctx.
func NewApp(ctx context.Context, s *session.Session, quitCommand string, l *slog.Logger) *App {
	if l == nil {
		l = logger.FromContext(ctx)
	}
	a := &App{
		ctx:         ctx,
		session:     s,
		quitCommand: quitCommand,
		logger:      l.With("component", "tui"),
		Application: tview.NewApplication(),
	}
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	a.CardView = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetWordWrap(true).
		SetWrap(true)

	a.CardView.SetBorder(true).
		SetTitle(fmt.Sprintf(" crablang: %s ", a.session.Mode())).
		SetTitleAlign(tview.AlignCenter)

	column := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(a.CardView, 0, 3, a.session.Mode() == session.ModeStudy)

	if a.session.Mode() == session.ModeQuiz {
		a.AnswerInput = tview.NewInputField().
			SetLabel("Answer: ").
			SetFieldWidth(0)
		a.AnswerInput.SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				a.SubmitAnswer(a.AnswerInput.GetText())
			}
		})
		column.AddItem(a.AnswerInput, 1, 0, true)
	}
	column.AddItem(nil, 0, 1, false)

	a.MainView = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(column, 0, 3, true).
		AddItem(nil, 0, 1, false)
}

// Run starts the session and blocks until the user quits or the context is
// cancelled. An unfinished session is quit before returning.
func (a *App) Run() error {
	if err := a.Start(); err != nil {
		return err
	}

	stop := context.AfterFunc(a.ctx, a.Application.Stop)
	defer stop()

	a.Application.SetRoot(a.MainView, true).SetInputCapture(a.HandleInput)
	if a.AnswerInput != nil {
		a.Application.SetFocus(a.AnswerInput)
	}
	if err := a.Application.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}

	if !a.session.Done() {
		if err := a.session.Quit(context.WithoutCancel(a.ctx)); err != nil {
			return err
		}
	}
	if a.err != nil {
		return a.err
	}
	return a.ctx.Err()
}

// Start presents the first card.
func (a *App) Start() error {
	if _, err := a.session.Start(a.ctx); err != nil {
		return err
	}
	a.logger.Debug("interface started", "mode", a.session.Mode(), "cards", a.session.Len())
	a.UpdateCardView()
	return nil
}

// HandleInput processes keyboard input. In quiz mode everything except Esc
// goes to the answer field.
func (a *App) HandleInput(event *tcell.EventKey) *tcell.EventKey {
	if a.finished {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyEscape:
			a.Application.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				a.Application.Stop()
				return nil
			}
		}
		return event
	}

	if event.Key() == tcell.KeyEscape {
		a.quit()
		return nil
	}
	if a.session.Mode() == session.ModeQuiz {
		return event
	}

	switch event.Key() {
	case tcell.KeyRight, tcell.KeyEnter:
		a.advanceStudy()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			a.quit()
			return nil
		case ' ':
			a.advanceStudy()
			return nil
		}
	}
	return event
}

// SubmitAnswer handles Enter in the quiz answer field. The first Enter
// checks the answer and the second moves to the next card.
func (a *App) SubmitAnswer(text string) {
	if a.finished {
		return
	}
	if a.quitCommand != "" && strings.TrimSpace(text) == a.quitCommand {
		a.quit()
		return
	}

	switch a.session.State() {
	case session.StatePresented:
		res, err := a.session.Submit(a.ctx, text)
		if err != nil {
			a.fail(err)
			return
		}
		a.last = &res
	case session.StateAnswered:
		a.last = nil
		if !a.next() {
			return
		}
	}
	a.AnswerInput.SetText("")
	a.UpdateCardView()
}

func (a *App) advanceStudy() {
	if !a.revealed {
		if _, err := a.session.Reveal(a.ctx); err != nil {
			a.fail(err)
			return
		}
		a.revealed = true
	} else {
		a.revealed = false
		if !a.next() {
			return
		}
	}
	a.UpdateCardView()
}

// next advances the session and reports whether there is another card.
func (a *App) next() bool {
	more, err := a.session.Next(a.ctx)
	if err != nil {
		a.fail(err)
		return false
	}
	if !more {
		a.showSummary()
	}
	return more
}

func (a *App) quit() {
	if err := a.session.Quit(a.ctx); err != nil {
		a.fail(err)
		return
	}
	a.showSummary()
}

func (a *App) fail(err error) {
	a.logger.Error("session failed", "error", err)
	a.err = err
	a.Application.Stop()
}

func (a *App) showSummary() {
	a.finished = true
	if a.AnswerInput != nil {
		a.AnswerInput.SetDisabled(true)
	}
	a.CardView.SetTitle(" Summary ")
	a.CardView.SetText(SummaryText(a.session))
}

// UpdateCardView redraws the current card.
func (a *App) UpdateCardView() {
	card, err := a.session.Current()
	if err != nil {
		return
	}

	var content strings.Builder
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "Card %d/%d\n\n", a.session.Position()+1, a.session.Len())
	content.WriteString("[cyan::b]" + tview.Escape(card.Term) + "[-::-]\n\n")

	switch {
	case a.session.Mode() == session.ModeStudy && a.revealed:
		content.WriteString("[yellow]" + tview.Escape(card.Definition) + "[-]\n")
	case a.last != nil && a.last.Correct:
		content.WriteString("[green]Correct![-]\n")
	case a.last != nil:
		content.WriteString("[red]Incorrect.[-] Answer: [yellow]" + tview.Escape(a.last.Card.Definition) + "[-]\n")
	}

	content.WriteString("\n─────────────────────────\n\n")
	if a.session.Mode() == session.ModeStudy {
		content.WriteString("→/Enter: Reveal/Next Card  |  q: Quit")
	} else {
		fmt.Fprintf(&content, "Score: %s\n", a.session.Score())
		content.WriteString("Enter: Check/Next Card  |  Esc: Quit")
	}

	a.CardView.SetText(content.String())
}

// SummaryText renders the end-of-session view for s.
func SummaryText(s *session.Session) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.Mode() == session.ModeStudy {
		fmt.Fprintf(&b, "Reviewed %d of %d cards.\n", len(s.Results()), s.Len())
	} else {
		score := s.Score()
		fmt.Fprintf(&b, "[::b]Final score: %s[::-]\n", score)
		if score.Total < s.Len() {
			fmt.Fprintf(&b, "Answered %d of %d cards.\n", score.Total, s.Len())
		}
		if missed := s.Missed(); len(missed) > 0 {
			b.WriteString("\nMissed:\n")
			for _, r := range missed {
				fmt.Fprintf(&b, "%s => [yellow]%s[-]\n", tview.Escape(r.Card.Term), tview.Escape(r.Card.Definition))
			}
		}
	}

	b.WriteString("\nPress Enter or q to exit")
	return b.String()
}
