package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phrazzld/crablang/internal/domain"
	"github.com/phrazzld/crablang/internal/format"
)

// writeList prints every card of deck followed by what was learned about
// the file while loading it.
func writeList(w io.Writer, loaded *format.Loaded, deck *domain.Deck) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tTERM\tDEFINITION")
	for i, card := range deck.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, card.Term, card.Definition)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats := loaded.Result.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File:     %s\n", loaded.Path)
	fmt.Fprintf(w, "Encoding: %s\n", loaded.Encoding)
	if loaded.Detection != nil {
		fmt.Fprintf(w, "Format:   %s (detected, %.0f%% of %d lines)\n",
			loaded.Format, loaded.Detection.Fraction*100, loaded.Detection.DataLines)
	} else {
		fmt.Fprintf(w, "Format:   %s\n", loaded.Format)
	}
	fmt.Fprintf(w, "Lines:    %d total, %d cards, %d skipped, %d errors, %d duplicates\n",
		stats.TotalLines, stats.ValidPairs, stats.SkippedLines, stats.Errors, stats.Duplicates)

	if len(loaded.Result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range loaded.Result.Warnings {
			fmt.Fprintf(w, "  %v\n", warning)
		}
	}
	if len(loaded.Issues) > 0 {
		fmt.Fprintln(w, "\nIssues:")
		for _, issue := range loaded.Issues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
