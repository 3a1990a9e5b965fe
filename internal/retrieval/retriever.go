// Package retrieval ranks journal entries by semantic similarity to a query.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/embedding"
	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/storage"
	"github.com/hyperjump/omoide/internal/vector"
)

// Retriever embeds a query and ranks embedded entries by cosine similarity.
type Retriever struct {
	storage  storage.Storage
	embedder embedding.Embedder
	logger   *zap.Logger
}

// NewRetriever creates a retriever. logger may be nil.
func NewRetriever(store storage.Storage, embedder embedding.Embedder, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{storage: store, embedder: embedder, logger: logger}
}

// Search returns entries ranked by similarity to query, highest first,
// truncated to the profile's top-K and filtered to scores strictly above its
// minimum. An empty query or an empty embedded collection yields an empty
// result, not an error. Ties keep the collection's stable date order.
func (r *Retriever) Search(ctx context.Context, query string, profile config.RetrievalProfile) ([]models.ScoredEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	entries, err := r.storage.ListEmbedded(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieval: list embedded entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed query: %w", err)
	}

	return Rank(queryVec, entries, profile), nil
}

// Rank scores entries against queryVec and applies the profile's top-K and
// minimum-score policy. Exposed separately so callers holding a vector (and
// tests) can skip the encoding step.
func Rank(queryVec []float32, entries []*models.Entry, profile config.RetrievalProfile) []models.ScoredEntry {
	scored := make([]models.ScoredEntry, 0, len(entries))
	for _, entry := range entries {
		score := vector.Cosine(queryVec, entry.Embedding)
		if score > profile.MinScore {
			scored = append(scored, models.ScoredEntry{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if profile.TopK > 0 && len(scored) > profile.TopK {
		scored = scored[:profile.TopK]
	}
	return scored
}
