// Package models defines core data structures for journal entries, analysis
// results, and the indexing job status.
package models

import "time"

// Entry represents a single dated journal entry. Embedding is nil until the
// indexing job has encoded the entry's content; it is always written whole,
// never partially updated.
type Entry struct {
	ID        string    `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"entry_date"`
	Content   string    `json:"content" db:"content"`
	Tags      string    `json:"tags,omitempty" db:"tags"`
	Embedding []float32 `json:"-" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasEmbedding reports whether the entry has been indexed.
func (e *Entry) HasEmbedding() bool {
	return len(e.Embedding) > 0
}

// EntryInput is the input for creating an entry (import path).
type EntryInput struct {
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
	Tags    string    `json:"tags,omitempty"`
}
