package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phrazzld/crablang/internal/format"
	"github.com/phrazzld/crablang/internal/session"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks a bad invocation rather than a failure to do the work.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// app carries the process streams and filesystem used by every command.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	fs     afero.Fs
	// configSearch and envFile override config discovery when set.
	configSearch []string
	envFile      string
}

// flagBindings maps config keys to the root command's flags.
var flagBindings = map[string]string{
	"log.level":          "log-level",
	"log.format":         "log-format",
	"detect.threshold":   "threshold",
	"detect.candidates":  "candidates",
	"parse.strip_markup": "strip-html",
	"session.mode":       "mode",
	"session.reverse":    "reverse",
	"session.shuffle":    "shuffle",
	"session.seed":       "seed",
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crablang FILE",
		Short: "Study and quiz yourself on flashcards from a delimited text file",
		Long: `crablang loads term/definition pairs from a text file, detecting whether
lines are separated by a tab, comma, semicolon, "##" or "|", and runs an
interactive study or quiz session over them.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			for _, pair := range [][2]string{{"study", "quiz"}, {"format", "delimiter"}} {
				if cmd.Flags().Changed(pair[0]) && cmd.Flags().Changed(pair[1]) {
					return &usageError{err: fmt.Errorf("--%s and --%s cannot be used together", pair[0], pair[1])}
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeck(cmd, args[0])
		},
	}

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.Bool("study", false, "reveal each definition in turn (default)")
	f.Bool("quiz", false, "type each definition and get scored")
	f.String("mode", "study", "session mode: study or quiz")
	f.Bool("reverse", false, "show definitions and ask for terms")
	f.Bool("list", false, "print the parsed cards and exit")
	f.Bool("shuffle", false, "present cards in random order")
	f.Int64("seed", 0, "shuffle seed; 0 seeds from the clock")
	f.Bool("tui", false, "run the session full-screen")
	f.String("format", "", "skip detection and use this format (see 'crablang formats')")
	f.String("delimiter", "", "skip detection and split on this delimiter")
	f.Float64("threshold", 0.5, "fraction of lines a delimiter must exceed to be detected")
	f.StringSlice("candidates", nil, "formats to try during detection, in order: "+strings.Join(format.Names(), ", "))
	f.Bool("strip-html", false, "strip HTML markup from card text")
	f.String("config", "", "config file (default crablang.yaml in . or ~/.config/crablang)")
	f.String("log-level", "warn", "log level: debug, info, warn, error")
	f.String("log-format", "text", "log format: text or json")

	cmd.AddCommand(newFormatsCmd())
	return cmd
}

// run executes the command line and maps the outcome to an exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut, fs: afero.NewOsFs()}
	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var usage *usageError
	switch {
	case errors.As(err, &usage):
		fmt.Fprintf(a.errOut, "Error: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
		return exitUsage
	case errors.Is(err, session.ErrInputClosed):
		return exitOK
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(a.errOut, "Interrupted.")
		return exitError
	}

	fmt.Fprintf(a.errOut, "Error: %v\n", err)
	return exitError
}

// modeOverride returns the mode selected by --study or --quiz, if either
// was given.
func modeOverride(flags *pflag.FlagSet) (string, bool) {
	if on, _ := flags.GetBool("quiz"); on {
		return string(session.ModeQuiz), true
	}
	if on, _ := flags.GetBool("study"); on {
		return string(session.ModeStudy), true
	}
	return "", false
}
