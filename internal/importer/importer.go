// Package importer loads journal drop files into storage.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/extract"
	"github.com/hyperjump/omoide/internal/keyword"
	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/storage"
)

// Result summarizes one import run.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Importer reads journal files from a drop directory and stores the entries
// it can date. Files whose date already has an entry are skipped, so re-runs
// are safe.
type Importer struct {
	storage   storage.Storage
	extractor *extract.Extractor
	keyword   keyword.Index
	logger    *zap.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithKeywordIndex makes the importer add each stored entry to kw so keyword
// search sees new entries without a separate reindex.
func WithKeywordIndex(kw keyword.Index) Option {
	return func(im *Importer) {
		im.keyword = kw
	}
}

// New creates an importer. logger may be nil.
func New(store storage.Storage, extractor *extract.Extractor, logger *zap.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	im := &Importer{
		storage:   store,
		extractor: extractor,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportDir imports every supported file directly under dir. Files that
// cannot be parsed or dated are counted as skipped, not errors.
func (im *Importer) ImportDir(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("importer: read dir: %w", err)
	}

	result := &Result{}
	for _, de := range entries {
		if de.IsDir() || !extract.Supported(filepath.Ext(de.Name())) {
			continue
		}
		imported, err := im.ImportFile(ctx, filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, err
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}
	im.logger.Info("import finished",
		zap.String("dir", dir),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ImportFile imports a single file. It returns false without an error when
// the file cannot be dated or an entry for its date already exists.
func (im *Importer) ImportFile(ctx context.Context, path string) (bool, error) {
	text, err := im.extractor.Extract(path)
	if err != nil {
		im.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return false, nil
	}

	input, ok := parseEntry(text, filepath.Base(path))
	if !ok {
		im.logger.Debug("skipping undated file", zap.String("path", path))
		return false, nil
	}

	exists, err := im.storage.HasEntryForDate(ctx, input.Date)
	if err != nil {
		return false, fmt.Errorf("importer: check date: %w", err)
	}
	if exists {
		return false, nil
	}

	entry := &models.Entry{
		ID:        uuid.NewString(),
		Date:      input.Date,
		Content:   input.Content,
		Tags:      input.Tags,
		CreatedAt: time.Now(),
	}
	if err := im.storage.CreateEntry(ctx, entry); err != nil {
		return false, fmt.Errorf("importer: create entry: %w", err)
	}
	if im.keyword != nil {
		if err := im.keyword.Index(ctx, entry); err != nil {
			im.logger.Warn("keyword index failed", zap.String("id", entry.ID), zap.Error(err))
		}
	}
	im.logger.Debug("imported entry",
		zap.String("path", path),
		zap.Time("date", input.Date))
	return true, nil
}
