package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/omoide/internal/models"
)

func sampleResults() []models.ScoredEntry {
	return []models.ScoredEntry{
		{
			Entry: &models.Entry{
				ID:      "e1",
				Date:    time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC),
				Content: "Hiked the ridge with Alice.",
				Tags:    "hiking",
			},
			Score: 0.91,
		},
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResults(), OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded []models.ScoredEntry
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Entry.ID != "e1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResults(), OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Found 1 matching", "Rank: 1", "2023-03-05", "hiking", "Hiked the ridge"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_unknownFormatTreatedAsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, nil, OutputFormat("unknown")); err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found 0 matching") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestWriteAnswer_text(t *testing.T) {
	var buf bytes.Buffer
	answer := &models.Answer{Text: "Yes, with Alice.", MemoryCount: 2}
	if err := WriteAnswer(&buf, answer, OutputText); err != nil {
		t.Fatalf("WriteAnswer(text): %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Yes, with Alice.") || !strings.Contains(out, "2 memories") {
		t.Errorf("output = %q", out)
	}
}

func TestWriteAnswer_JSON(t *testing.T) {
	var buf bytes.Buffer
	answer := &models.Answer{Text: "Yes.", MemoryCount: 1}
	if err := WriteAnswer(&buf, answer, OutputJSON); err != nil {
		t.Fatalf("WriteAnswer(json): %v", err)
	}
	var decoded models.Answer
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Text != "Yes." {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"maxLen zero", "ab", 0, "ab"},
		{"maxLen negative", "ab", -1, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
