// Package embedding provides the text-encoding capability: an Embedder
// interface with an ONNX implementation and a deterministic mock for tests.
package embedding

import "context"

// Embedder produces fixed-dimension vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Close() error
}
