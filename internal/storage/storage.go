// Package storage defines the persistence interface for journal entries and
// their embeddings.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hyperjump/omoide/internal/models"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("storage: entry not found")

// Storage defines journal entry persistence operations. Embeddings are read
// and written through the same entry rows; SaveEmbeddings commits a whole
// batch in one transaction so concurrent readers never observe a half-written
// indexing pass.
type Storage interface {
	// Entry operations
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	ListEntries(ctx context.Context) ([]*models.Entry, error)
	ListEntriesChrono(ctx context.Context) ([]*models.Entry, error)
	HasEntryForDate(ctx context.Context, date time.Time) (bool, error)

	// Embedding operations
	ListEmbedded(ctx context.Context) ([]*models.Entry, error)
	ListMissingEmbedding(ctx context.Context) ([]*models.Entry, error)
	SaveEmbeddings(ctx context.Context, embeddings map[string][]float32) error

	// Stats
	CountEntries(ctx context.Context) (int64, error)
	CountEmbedded(ctx context.Context) (int64, error)

	Close() error
}
