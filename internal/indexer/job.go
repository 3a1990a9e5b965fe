package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/embedding"
	"github.com/hyperjump/omoide/internal/storage"
)

// Job encodes the content of every entry that still lacks an embedding and
// persists all vectors as one batch. A re-run targets only entries still
// missing a vector, so repeated invocations converge to the same end state.
type Job struct {
	storage  storage.Storage
	embedder embedding.Embedder
	tracker  *StatusTracker
	logger   *zap.Logger
}

// NewJob creates an indexing job. logger may be nil.
func NewJob(store storage.Storage, embedder embedding.Embedder, tracker *StatusTracker, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		storage:  store,
		embedder: embedder,
		tracker:  tracker,
		logger:   logger,
	}
}

// Run executes one indexing pass: list un-embedded entries in stable order,
// encode each, then commit every vector in a single transaction. On any
// failure the uncommitted batch is discarded, previously committed embeddings
// stay untouched, and the tracker resets to idle.
func (j *Job) Run(ctx context.Context) error {
	entries, err := j.storage.ListMissingEmbedding(ctx)
	if err != nil {
		j.logger.Error("indexing failed: list entries", zap.Error(err))
		return fmt.Errorf("indexer: list entries: %w", err)
	}
	if len(entries) == 0 {
		j.logger.Debug("indexing: nothing to do")
		return nil
	}

	if !j.tracker.Start(len(entries)) {
		return fmt.Errorf("indexer: job already processing")
	}
	defer j.tracker.Finish()

	j.logger.Info("indexing started", zap.Int("entries", len(entries)))

	batch := make(map[string][]float32, len(entries))
	for _, entry := range entries {
		emb, err := j.embedder.Embed(ctx, entry.Content)
		if err != nil {
			j.logger.Error("indexing failed: embed entry",
				zap.String("entry_id", entry.ID), zap.Error(err))
			return fmt.Errorf("indexer: embed entry %s: %w", entry.ID, err)
		}
		batch[entry.ID] = emb
		j.tracker.Advance()
	}

	if err := j.storage.SaveEmbeddings(ctx, batch); err != nil {
		j.logger.Error("indexing failed: persist batch", zap.Error(err))
		return fmt.Errorf("indexer: persist batch: %w", err)
	}

	j.logger.Info("indexing done", zap.Int("embedded", len(batch)))
	return nil
}
