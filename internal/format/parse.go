package format

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/phrazzld/crablang/internal/domain"
)

// Options controls how lines are split into cards.
type Options struct {
	// CommentPrefix starts a comment line. Empty disables comments.
	CommentPrefix string
	// StripQuotes removes a matching pair of quotes around each side.
	StripQuotes bool
	// StripMarkup removes HTML tags from each side.
	StripMarkup bool
}

// DefaultOptions returns the standard parser options.
func DefaultOptions() Options {
	return Options{
		CommentPrefix: DefaultCommentPrefix,
		StripQuotes:   true,
	}
}

// Stats counts what happened to each line of the last parse.
type Stats struct {
	TotalLines   int `json:"total_lines"`
	ValidPairs   int `json:"valid_pairs"`
	SkippedLines int `json:"skipped_lines"`
	Errors       int `json:"errors"`
	Duplicates   int `json:"duplicates"`
}

// Result is the output of a parse. Cards are in file order.
type Result struct {
	Cards    []domain.Flashcard
	Stats    Stats
	Warnings []*LineError
}

// Parser splits delimited text into flashcards.
type Parser struct {
	format Format
	opts   Options
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewParser creates a Parser for the given format.
func NewParser(f Format, opts Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{
		format: f,
		opts:   opts,
		logger: logger.With("component", "record_parser", "format", f.Name),
	}
	if opts.StripMarkup {
		p.policy = bluemonday.StrictPolicy()
	}
	return p
}

// Parse splits content into cards. Blank and comment lines are skipped.
// Lines without exactly one delimiter, or with an empty side, are dropped
// and reported in Result.Warnings. Repeated terms are kept and reported.
func (p *Parser) Parse(content string) Result {
	lines := splitLines(content)
	res := Result{Stats: Stats{TotalLines: len(lines)}}
	seen := make(map[string]int)

	for i, raw := range lines {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		if isSkippable(line, p.opts.CommentPrefix) {
			res.Stats.SkippedLines++
			continue
		}

		n, idx := scanDelimiter(line, p.format.Delimiter)
		if n != 1 {
			res.Stats.Errors++
			p.warn(&res, "skipping line", lineNum, line, fmt.Errorf("%w: expected one %q delimiter, found %d",
				ErrMalformedLine, p.format.Delimiter, n))
			continue
		}

		card, err := domain.NewFlashcard(
			p.clean(line[:idx]),
			p.clean(line[idx+len(p.format.Delimiter):]),
		)
		if err != nil {
			res.Stats.Errors++
			p.warn(&res, "skipping line", lineNum, line, fmt.Errorf("%w: %w", ErrEmptySide, err))
			continue
		}

		key := strings.ToLower(card.Term)
		if prev, ok := seen[key]; ok {
			res.Stats.Duplicates++
			p.warn(&res, "keeping duplicate term", lineNum, line, fmt.Errorf("%w: %q first seen on line %d",
				ErrDuplicateTerm, card.Term, prev))
		} else {
			seen[key] = lineNum
		}

		res.Cards = append(res.Cards, card)
		res.Stats.ValidPairs++
	}

	return res
}

func (p *Parser) warn(res *Result, msg string, line int, content string, err error) {
	res.Warnings = append(res.Warnings, &LineError{Line: line, Content: content, Err: err})
	p.logger.Warn(msg,
		"line", line,
		"reason", err.Error(),
		"content", content)
}

func (p *Parser) clean(side string) string {
	side = strings.TrimSpace(side)
	if p.opts.StripQuotes {
		side = stripQuotes(side)
	}
	if p.policy != nil {
		side = strings.TrimSpace(html.UnescapeString(p.policy.Sanitize(side)))
	}
	return side
}

// stripQuotes removes one pair of matching double or single quotes around s.
// Doubled double quotes inside a double-quoted side collapse to one.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '\'') {
		return s
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if first == '"' {
		inner = strings.ReplaceAll(inner, `""`, `"`)
	}
	return inner
}
