// Package analytics computes relationship and mood statistics over the
// journal: entity co-occurrence, common connections between a pair of
// entities, a corpus-wide entity summary, and a sentiment timeline.
package analytics

import (
	"errors"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/entity"
	"github.com/hyperjump/omoide/internal/sentiment"
	"github.com/hyperjump/omoide/internal/storage"
)

// Validation errors surfaced to API callers.
var (
	ErrEntityCount   = errors.New("analytics: co-occurrence requires 2 to 4 distinct entities")
	ErrMissingEntity = errors.New("analytics: common connections requires two entities")
)

// Service answers analysis queries against the stored journal.
type Service struct {
	storage   storage.Storage
	extractor entity.Extractor
	scorer    sentiment.Scorer
	logger    *zap.Logger
}

// NewService creates an analytics service. logger may be nil.
func NewService(store storage.Storage, extractor entity.Extractor, scorer sentiment.Scorer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage:   store,
		extractor: extractor,
		scorer:    scorer,
		logger:    logger,
	}
}
