// Package storage provides the SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/vector"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist. WAL mode is
// enabled so analytics reads can run alongside the indexing job's batch commit.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		entry_date TIMESTAMP NOT NULL UNIQUE,
		content TEXT NOT NULL,
		tags TEXT,
		embedding BLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_entry_date ON entries(entry_date);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateEntry inserts an entry. The embedding, if any, is stored alongside.
func (s *SQLiteStorage) CreateEntry(ctx context.Context, entry *models.Entry) error {
	entry.CreatedAt = time.Now()

	var blob []byte
	if entry.HasEmbedding() {
		blob = vector.Encode(entry.Embedding)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, entry_date, content, tags, embedding, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Content, entry.Tags, blob, entry.CreatedAt,
	)
	return err
}

// GetEntry returns an entry by ID.
func (s *SQLiteStorage) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, entry_date, content, tags, embedding, created_at
		 FROM entries WHERE id = ?`, id,
	)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entry, err
}

// ListEntries returns all entries, newest first.
func (s *SQLiteStorage) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	return s.listEntries(ctx, `SELECT id, entry_date, content, tags, embedding, created_at
		FROM entries ORDER BY entry_date DESC`)
}

// ListEntriesChrono returns all entries, oldest first.
func (s *SQLiteStorage) ListEntriesChrono(ctx context.Context) ([]*models.Entry, error) {
	return s.listEntries(ctx, `SELECT id, entry_date, content, tags, embedding, created_at
		FROM entries ORDER BY entry_date ASC`)
}

// ListEmbedded returns entries that have an embedding, oldest first. The
// ordering is stable so retrieval tie-breaks are deterministic.
func (s *SQLiteStorage) ListEmbedded(ctx context.Context) ([]*models.Entry, error) {
	return s.listEntries(ctx, `SELECT id, entry_date, content, tags, embedding, created_at
		FROM entries WHERE embedding IS NOT NULL ORDER BY entry_date ASC`)
}

// ListMissingEmbedding returns entries without an embedding, oldest first.
// This is the indexing job's work list; the ordering makes the pass
// deterministic.
func (s *SQLiteStorage) ListMissingEmbedding(ctx context.Context) ([]*models.Entry, error) {
	return s.listEntries(ctx, `SELECT id, entry_date, content, tags, embedding, created_at
		FROM entries WHERE embedding IS NULL ORDER BY entry_date ASC`)
}

func (s *SQLiteStorage) listEntries(ctx context.Context, query string) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var entry models.Entry
	var tags sql.NullString
	var blob []byte
	if err := row.Scan(&entry.ID, &entry.Date, &entry.Content, &tags, &blob, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.Tags = tags.String
	if len(blob) > 0 {
		emb, err := vector.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		entry.Embedding = emb
	}
	return &entry, nil
}

// HasEntryForDate reports whether an entry already exists for the given date.
// Import uses this to skip files for dates that were already loaded.
func (s *SQLiteStorage) HasEntryForDate(ctx context.Context, date time.Time) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE entry_date = ?`, date,
	).Scan(&n)
	return n > 0, err
}

// SaveEmbeddings writes a batch of embeddings in a single transaction. Either
// every vector in the batch is persisted or none is.
func (s *SQLiteStorage) SaveEmbeddings(ctx context.Context, embeddings map[string][]float32) error {
	if len(embeddings) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE entries SET embedding = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, emb := range embeddings {
		if _, err := stmt.ExecContext(ctx, vector.Encode(emb), id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountEntries returns the total number of entries.
func (s *SQLiteStorage) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	return count, err
}

// CountEmbedded returns the number of entries with an embedding.
func (s *SQLiteStorage) CountEmbedded(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE embedding IS NOT NULL`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
