// Package cli provides output helpers for the Omoide command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/omoide/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes semantic search hits to w in the given format.
func WriteSearchResults(w io.Writer, results []models.ScoredEntry, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	fmt.Fprintf(w, "\nFound %d matching memories\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.4f | %s\n", i+1, r.Score, r.Entry.Date.Format("2006-01-02"))
		if r.Entry.Tags != "" {
			fmt.Fprintf(w, "Tags: %s\n", r.Entry.Tags)
		}
		fmt.Fprintf(w, "\n%s\n\n", Truncate(r.Entry.Content, 200))
	}
	return nil
}

// WriteAnswer writes a twin answer to w in the given format.
func WriteAnswer(w io.Writer, answer *models.Answer, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}
	fmt.Fprintf(w, "\n%s\n", answer.Text)
	if answer.MemoryCount > 0 {
		fmt.Fprintf(w, "\n(drawn from %d memories)\n", answer.MemoryCount)
	}
	return nil
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
