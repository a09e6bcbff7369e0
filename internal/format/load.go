package format

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/phrazzld/crablang/internal/domain"
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Format forces a format and skips detection when non-nil.
	Format *Format
	// Candidates are tried in order during detection. Empty means all built-ins.
	Candidates []Format
	// Threshold is the fraction of data lines a candidate must exceed.
	Threshold float64
	Options   Options
	Limits    domain.Limits
}

// Loaded is a deck read from disk together with what was learned about the
// file while loading it.
type Loaded struct {
	Path      string
	Encoding  string
	Format    Format
	Detection *Detection
	Result    Result
	Issues    []domain.Issue
	Deck      *domain.Deck
}

// Loader reads, decodes, detects and parses flashcard files.
type Loader struct {
	fs     afero.Fs
	cfg    LoaderConfig
	logger *slog.Logger
}

// NewLoader creates a Loader reading from fs. A nil fs reads the OS
// filesystem.
func NewLoader(fs afero.Fs, cfg LoaderConfig, logger *slog.Logger) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fs: fs, cfg: cfg, logger: logger}
}

// Load reads path in one shot and returns the parsed deck. Errors are
// *LoadError values wrapping domain.ErrEncoding, domain.ErrFormatDetection
// or domain.ErrEmptyDeck.
func (l *Loader) Load(path string) (*Loaded, error) {
	log := l.logger.With("component", "loader", "path", path)

	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, &LoadError{Op: "read", Path: path, Err: fmt.Errorf("%w: %w", domain.ErrEncoding, err)}
	}

	content, enc, err := Decode(raw)
	if err != nil {
		return nil, &LoadError{Op: "decode", Path: path, Err: err}
	}
	log.Debug("file decoded", "bytes", len(raw), "encoding", enc)

	loaded := &Loaded{Path: path, Encoding: enc}

	if l.cfg.Format != nil {
		loaded.Format = *l.cfg.Format
	} else {
		det, err := NewDetector(l.cfg.Candidates, l.cfg.Threshold, l.cfg.Options.CommentPrefix, l.logger).Detect(content)
		if err != nil {
			return nil, &LoadError{Op: "detect", Path: path, Err: err}
		}
		loaded.Detection = &det
		loaded.Format = det.Format
	}
	log.Debug("format selected", "format", loaded.Format.Name, "detected", loaded.Detection != nil)

	loaded.Result = NewParser(loaded.Format, l.cfg.Options, l.logger).Parse(content)

	deck, err := domain.NewDeck(loaded.Result.Cards)
	if err != nil {
		return nil, &LoadError{Op: "parse", Path: path, Err: err}
	}
	loaded.Deck = deck

	loaded.Issues = domain.Validate(loaded.Result.Cards, l.cfg.Limits)
	for _, issue := range loaded.Issues {
		log.Warn("card issue", "index", issue.Index, "term", issue.Term, "problem", issue.Problem)
	}

	stats := loaded.Result.Stats
	log.Info("deck loaded",
		"format", loaded.Format.Name,
		"encoding", enc,
		"cards", deck.Len(),
		"skipped_lines", stats.SkippedLines,
		"errors", stats.Errors,
		"duplicates", stats.Duplicates)

	return loaded, nil
}
