// Package twin implements the digital-twin answer pipeline: query expansion,
// semantic retrieval, context budgeting, and answer synthesis.
package twin

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/generation"
)

const expansionPrompt = `List 5 to 7 comma-separated keywords closely related to this journal search query. Output only the keywords, nothing else.

Query: %s
Keywords:`

// Expander enriches a raw query with related keywords before retrieval.
// Generation failures degrade to the original query.
type Expander struct {
	generator   generation.Generator
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewExpander creates an expander. logger may be nil.
func NewExpander(gen generation.Generator, maxTokens int, temperature float64, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{
		generator:   gen,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Expand returns the query with generated keywords appended (original first).
// On any generation failure or empty output, the original query is returned
// unchanged.
func (e *Expander) Expand(ctx context.Context, query string) string {
	out, err := e.generator.Generate(ctx, fmt.Sprintf(expansionPrompt, query), generation.Options{
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		// Keywords fit on one line; cut generation at the first newline.
		Stop: []string{"\n"},
	})
	if err != nil {
		e.logger.Warn("query expansion failed, using original query", zap.Error(err))
		return query
	}
	expansion := strings.TrimSpace(out)
	if expansion == "" {
		return query
	}
	return query + " " + expansion
}
