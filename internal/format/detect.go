package format

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/crablang/internal/domain"
)

// DefaultThreshold is the fraction of data lines a delimiter must exceed to
// be selected.
const DefaultThreshold = 0.5

// DefaultCommentPrefix starts a comment line.
const DefaultCommentPrefix = "#"

// Candidate is the score of one format against a file.
type Candidate struct {
	Format   Format
	Matches  int
	Fraction float64
}

// Detection is the outcome of format detection.
type Detection struct {
	Format     Format
	Fraction   float64
	DataLines  int
	Candidates []Candidate
}

// Detector picks the delimiter that splits the most data lines into exactly
// one term and one definition. Data lines are lines that are neither blank
// nor comments.
type Detector struct {
	candidates    []Format
	threshold     float64
	commentPrefix string
	logger        *slog.Logger
}

// NewDetector creates a Detector over candidates in priority order. An empty
// candidate list selects the built-in formats; a non-positive threshold
// selects DefaultThreshold. A threshold of 1 requires every data line to
// match.
func NewDetector(candidates []Format, threshold float64, commentPrefix string, logger *slog.Logger) *Detector {
	if len(candidates) == 0 {
		candidates = Formats()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		candidates:    candidates,
		threshold:     threshold,
		commentPrefix: commentPrefix,
		logger:        logger.With("component", "format_detector"),
	}
}

// Detect scores every candidate against content and returns the one with the
// highest fraction of single-delimiter lines. Ties go to the candidate listed
// first. It returns an error wrapping domain.ErrFormatDetection when no
// candidate's fraction exceeds the threshold.
func (d *Detector) Detect(content string) (Detection, error) {
	var data []string
	for _, raw := range splitLines(content) {
		line := strings.TrimSpace(raw)
		if isSkippable(line, d.commentPrefix) {
			continue
		}
		data = append(data, line)
	}

	det := Detection{DataLines: len(data)}
	if len(data) == 0 {
		return det, fmt.Errorf("%w: no data lines", domain.ErrFormatDetection)
	}

	best := -1
	for _, f := range d.candidates {
		c := Candidate{Format: f}
		for _, line := range data {
			if n, _ := scanDelimiter(line, f.Delimiter); n == 1 {
				c.Matches++
			}
		}
		c.Fraction = float64(c.Matches) / float64(len(data))
		det.Candidates = append(det.Candidates, c)

		if best < 0 || c.Fraction > det.Candidates[best].Fraction {
			best = len(det.Candidates) - 1
		}
	}

	winner := det.Candidates[best]
	d.logger.Debug("format candidates scored",
		"data_lines", len(data),
		"best_format", winner.Format.Name,
		"best_fraction", winner.Fraction,
		"threshold", d.threshold)

	if !d.qualifies(winner.Fraction) {
		return det, fmt.Errorf("%w: best candidate %s matched %d of %d lines (threshold %.0f%%)",
			domain.ErrFormatDetection, winner.Format.Name, winner.Matches, len(data), d.threshold*100)
	}

	det.Format = winner.Format
	det.Fraction = winner.Fraction
	return det, nil
}

// qualifies reports whether fraction beats the threshold. A threshold of 1
// or more is met only when every data line matches.
func (d *Detector) qualifies(fraction float64) bool {
	if d.threshold >= 1 {
		return fraction >= 1
	}
	return fraction > d.threshold
}
