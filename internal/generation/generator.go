// Package generation provides the bounded text-completion capability used by
// query expansion and the twin's answer synthesis.
package generation

import "context"

// Options bound a single completion call.
type Options struct {
	// MaxTokens caps the generated length.
	MaxTokens int
	// Temperature controls randomness; near 0 is near-deterministic.
	Temperature float64
	// Stop tokens cut generation short at the first occurrence.
	Stop []string
}

// Generator produces a bounded text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
