// Package keyword provides full-text search over journal entries.
package keyword

import (
	"context"

	"github.com/hyperjump/omoide/internal/models"
)

// Index defines keyword search operations over entries.
type Index interface {
	Index(ctx context.Context, entry *models.Entry) error
	Search(ctx context.Context, query string, limit int) ([]*Result, error)
	Delete(ctx context.Context, id string) error
	DocCount() (uint64, error)
	Close() error
}

// Result is a single keyword search hit.
type Result struct {
	ID    string
	Score float64
}
