package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/omoide/internal/extract"
	"github.com/hyperjump/omoide/internal/storage"
)

func TestParseEntry_CreatedHeader(t *testing.T) {
	text := "# My Day\nCreated: March 5, 2023 7:30 PM\nTags: hiking, friends\n\nWent up the ridge with Alice."

	input, ok := parseEntry(text, "export-001.md")
	if !ok {
		t.Fatal("parseEntry() ok = false")
	}
	want := time.Date(2023, 3, 5, 19, 30, 0, 0, time.UTC)
	if !input.Date.Equal(want) {
		t.Errorf("date = %v, want %v", input.Date, want)
	}
	if input.Tags != "hiking, friends" {
		t.Errorf("tags = %q", input.Tags)
	}
	if input.Content != "Went up the ridge with Alice." {
		t.Errorf("content = %q", input.Content)
	}
}

func TestParseEntry_CreatedDateOnly(t *testing.T) {
	input, ok := parseEntry("Created: March 5, 2023\nBody.", "x.txt")
	if !ok {
		t.Fatal("parseEntry() ok = false")
	}
	if !input.Date.Equal(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", input.Date)
	}
}

func TestParseEntry_FilenameFallback(t *testing.T) {
	input, ok := parseEntry("Just a plain body.", "2023-03-05.txt")
	if !ok {
		t.Fatal("parseEntry() ok = false")
	}
	if !input.Date.Equal(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", input.Date)
	}
	if input.Content != "Just a plain body." {
		t.Errorf("content = %q", input.Content)
	}
}

func TestParseEntry_Undatable(t *testing.T) {
	if _, ok := parseEntry("No headers here.", "notes.txt"); ok {
		t.Error("parseEntry() ok = true for undatable file")
	}
}

func TestParseEntry_KeepsBodyLines(t *testing.T) {
	text := "# Title\nCreated: March 5, 2023\nTags: misc\nFirst line.\n\nSecond line about tags: none."
	input, ok := parseEntry(text, "x.md")
	if !ok {
		t.Fatal("parseEntry() ok = false")
	}
	if input.Content != "First line.\n\nSecond line about tags: none." {
		t.Errorf("content = %q", input.Content)
	}
}

func newTestImporter(t *testing.T) (*Importer, storage.Storage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "import.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, extract.NewExtractor(), nil), store
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestImportDir(t *testing.T) {
	im, store := newTestImporter(t)
	dir := t.TempDir()
	writeFile(t, dir, "2023-03-05.md", "# Day\nTags: food\nDinner at the harbor.")
	writeFile(t, dir, "2023-03-06.txt", "Quiet day at home.")
	writeFile(t, dir, "undated.txt", "No date anywhere.")
	writeFile(t, dir, "ignored.xlsx", "spreadsheet")

	result, err := im.ImportDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ImportDir() error = %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 2 imported, 1 skipped", result)
	}

	entries, err := store.ListEntriesChrono(context.Background())
	if err != nil {
		t.Fatalf("ListEntriesChrono() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("stored %d entries, want 2", len(entries))
	}
	if entries[0].Content != "Dinner at the harbor." || entries[0].Tags != "food" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Errorf("entries need distinct non-empty IDs: %q, %q", entries[0].ID, entries[1].ID)
	}
}

func TestImportDir_SkipsExistingDates(t *testing.T) {
	im, store := newTestImporter(t)
	dir := t.TempDir()
	writeFile(t, dir, "2023-03-05.md", "Original text.")

	for i := 0; i < 2; i++ {
		if _, err := im.ImportDir(context.Background(), dir); err != nil {
			t.Fatalf("ImportDir() run %d error = %v", i+1, err)
		}
	}

	entries, err := store.ListEntriesChrono(context.Background())
	if err != nil {
		t.Fatalf("ListEntriesChrono() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("stored %d entries after re-run, want 1", len(entries))
	}
	if entries[0].Content != "Original text." {
		t.Errorf("re-import overwrote the entry: %q", entries[0].Content)
	}
}

func TestImportDir_Missing(t *testing.T) {
	im, _ := newTestImporter(t)
	if _, err := im.ImportDir(context.Background(), "/nonexistent/drop"); err == nil {
		t.Error("ImportDir() error = nil for missing directory")
	}
}
