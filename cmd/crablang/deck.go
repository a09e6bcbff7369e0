package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/crablang/internal/config"
	"github.com/phrazzld/crablang/internal/domain"
	"github.com/phrazzld/crablang/internal/events"
	"github.com/phrazzld/crablang/internal/format"
	"github.com/phrazzld/crablang/internal/platform/logger"
	"github.com/phrazzld/crablang/internal/session"
	"github.com/phrazzld/crablang/internal/tui"
)

// initializeApp loads configuration and sets up logging for cmd.
func (a *app) initializeApp(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:  configFile,
		SearchPaths: a.configSearch,
		EnvFile:     a.envFile,
		Flags:       cmd.Flags(),
		Bindings:    flagBindings,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if mode, ok := modeOverride(cmd.Flags()); ok {
		cfg.Session.Mode = mode
	}

	l, err := logger.Setup(cfg.Log, a.errOut)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Debug("configuration loaded",
		"file", cfg.File,
		"log_level", cfg.Log.Level,
		"mode", cfg.Session.Mode,
		"threshold", cfg.Detect.Threshold)

	return cfg, l, nil
}

// loaderConfig translates cfg and the --format/--delimiter flags into a
// format.LoaderConfig.
func loaderConfig(cmd *cobra.Command, cfg *config.Config) (format.LoaderConfig, error) {
	lc := format.LoaderConfig{
		Threshold: cfg.Detect.Threshold,
		Options: format.Options{
			CommentPrefix: cfg.Parse.CommentPrefix,
			StripQuotes:   cfg.Parse.StripQuotes,
			StripMarkup:   cfg.Parse.StripMarkup,
		},
		Limits: domain.Limits{
			MaxTermLength:       cfg.Parse.MaxTermLength,
			MaxDefinitionLength: cfg.Parse.MaxDefinitionLength,
		},
	}

	for _, name := range cfg.Detect.Candidates {
		f, err := format.Lookup(name)
		if err != nil {
			return lc, &usageError{err: err}
		}
		lc.Candidates = append(lc.Candidates, f)
	}

	if name, _ := cmd.Flags().GetString("format"); name != "" {
		f, err := format.Lookup(name)
		if err != nil {
			return lc, &usageError{err: err}
		}
		lc.Format = &f
	}
	if delim, _ := cmd.Flags().GetString("delimiter"); delim != "" {
		// Accept escapes such as \t from the shell
		if unquoted, err := strconv.Unquote(`"` + delim + `"`); err == nil {
			delim = unquoted
		}
		f, err := format.Custom(delim)
		if err != nil {
			return lc, &usageError{err: err}
		}
		lc.Format = &f
	}

	return lc, nil
}

// runDeck loads path and either lists it or runs a session over it.
func (a *app) runDeck(cmd *cobra.Command, path string) error {
	cfg, l, err := a.initializeApp(cmd)
	if err != nil {
		return err
	}

	lc, err := loaderConfig(cmd, cfg)
	if err != nil {
		return err
	}

	loaded, err := format.NewLoader(a.fs, lc, l).Load(path)
	if err != nil {
		return err
	}

	deck := arrange(loaded.Deck, cfg.Session)

	if list, _ := cmd.Flags().GetBool("list"); list {
		return writeList(a.out, loaded, deck)
	}

	mode, err := session.ParseMode(cfg.Session.Mode)
	if err != nil {
		return &usageError{err: err}
	}

	emitter := events.NewInMemoryEventEmitter(l)
	emitter.RegisterHandler(session.NewLogEventHandler(l))

	s, err := session.New(deck, session.Config{Mode: mode, Emitter: emitter, Logger: l})
	if err != nil {
		return err
	}

	// The runner and the TUI pick the logger up from ctx
	ctx := logger.WithLogger(cmd.Context(), l)
	if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
		return tui.NewApp(ctx, s, cfg.Session.QuitCommand, nil).Run()
	}
	return session.NewRunner(a.in, a.out, cfg.Session.QuitCommand, nil).Run(ctx, s)
}

// arrange applies the shuffle and reverse settings to deck.
func arrange(deck *domain.Deck, cfg config.SessionConfig) *domain.Deck {
	if cfg.Shuffle {
		seed := uint64(cfg.Seed)
		if cfg.Seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		deck = deck.Shuffled(rand.New(rand.NewPCG(seed, seed)))
	}
	if cfg.Reverse {
		deck = deck.Reversed()
	}
	return deck
}
