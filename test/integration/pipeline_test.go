// Package integration exercises the full import, indexing, and retrieval
// pipeline against real storage and indices.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/embedding"
	"github.com/hyperjump/omoide/internal/extract"
	"github.com/hyperjump/omoide/internal/generation"
	"github.com/hyperjump/omoide/internal/importer"
	"github.com/hyperjump/omoide/internal/indexer"
	"github.com/hyperjump/omoide/internal/keyword"
	"github.com/hyperjump/omoide/internal/retrieval"
	"github.com/hyperjump/omoide/internal/storage"
	"github.com/hyperjump/omoide/internal/twin"
)

// dropFiles is a small journal drop directory: two dated entries, one file
// without any date, and one unsupported format.
var dropFiles = map[string]string{
	"2024-06-01.txt": "Created: June 1, 2024\nTags: hiking, travel\n\n" +
		"Hiked the Matterhorn trail with Ben. Icy near the summit but the view was unforgettable.",
	"glacier-day.md": "# Glacier day\nCreated: June 2, 2024 7:15 PM\n\n" +
		"Crossed the glacier field at dawn. Roped up with Priya and watched the sun hit the seracs.",
	"notes.txt":    "Random scratch notes with no date anywhere.",
	"numbers.xlsx": "not a journal entry",
}

func TestPipeline_ImportIndexRetrieve(t *testing.T) {
	dir := t.TempDir()
	dropDir := filepath.Join(dir, "drop")
	if err := os.MkdirAll(dropDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range dropFiles {
		if err := os.WriteFile(filepath.Join(dropDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	kw, err := keyword.NewBleveIndex(filepath.Join(dir, "bleve"))
	if err != nil {
		t.Fatal(err)
	}
	defer kw.Close()

	embedder := embedding.NewMockEmbedder(64)
	tracker := indexer.NewStatusTracker()
	job := indexer.NewJob(store, embedder, tracker, nil)
	runner := indexer.NewRunner(job, tracker, nil)
	retriever := retrieval.NewRetriever(store, embedder, nil)
	imp := importer.New(store, extract.NewExtractor(), nil, importer.WithKeywordIndex(kw))

	ctx := context.Background()
	result, err := imp.ImportDir(ctx, dropDir)
	if err != nil {
		t.Fatal(err)
	}
	if result.Imported != 2 {
		t.Fatalf("imported %d entries, want 2", result.Imported)
	}
	if result.Skipped != 1 {
		t.Fatalf("skipped %d files, want 1 (the undated one)", result.Skipped)
	}

	if !runner.Trigger() {
		t.Fatal("trigger refused")
	}
	runner.Wait()

	embedded, err := store.CountEmbedded(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if embedded != 2 {
		t.Fatalf("embedded %d entries, want 2", embedded)
	}

	profile := config.RetrievalProfile{TopK: 5, MinScore: 0.05}
	results, err := retriever.Search(ctx, "Matterhorn summit hike", profile)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("semantic search returned nothing")
	}
	if got := results[0].Entry.Date.Format("2006-01-02"); got != "2024-06-01" {
		t.Errorf("top semantic hit is %s, want 2024-06-01", got)
	}

	hits, err := kw.Search(ctx, "glacier", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("keyword search returned %d hits, want 1", len(hits))
	}

	// Re-running the import must not duplicate entries.
	again, err := imp.ImportDir(ctx, dropDir)
	if err != nil {
		t.Fatal(err)
	}
	if again.Imported != 0 {
		t.Fatalf("re-import created %d entries, want 0", again.Imported)
	}
	count, err := store.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("store holds %d entries after re-import, want 2", count)
	}
}

func TestPipeline_TwinAsk(t *testing.T) {
	dir := t.TempDir()
	dropDir := filepath.Join(dir, "drop")
	if err := os.MkdirAll(dropDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range dropFiles {
		if err := os.WriteFile(filepath.Join(dropDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	embedder := embedding.NewMockEmbedder(64)
	tracker := indexer.NewStatusTracker()
	job := indexer.NewJob(store, embedder, tracker, nil)
	runner := indexer.NewRunner(job, tracker, nil)
	retriever := retrieval.NewRetriever(store, embedder, nil)
	imp := importer.New(store, extract.NewExtractor(), nil)

	ctx := context.Background()
	if _, err := imp.ImportDir(ctx, dropDir); err != nil {
		t.Fatal(err)
	}
	runner.Trigger()
	runner.Wait()

	gen := &generation.MockGenerator{Reply: "Final Answer: We roped up and crossed at dawn."}
	cfg := config.Config{}
	config.ApplyDefaults(&cfg)
	svc := twin.NewService(retriever, gen, cfg.Twin, config.RetrievalProfile{TopK: 5, MinScore: 0.05}, nil)

	answer, err := svc.Ask(ctx, "How did we cross the glacier field?")
	if err != nil {
		t.Fatal(err)
	}
	if answer.Text != "We roped up and crossed at dawn." {
		t.Errorf("answer = %q", answer.Text)
	}
	if answer.MemoryCount == 0 {
		t.Error("answer used no memories")
	}
	// Expansion call plus synthesis call.
	if len(gen.Calls) != 2 {
		t.Errorf("generator saw %d calls, want 2", len(gen.Calls))
	}
}
