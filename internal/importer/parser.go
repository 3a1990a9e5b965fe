package importer

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hyperjump/omoide/internal/models"
)

var (
	createdLine = regexp.MustCompile(`(?i)Created:\s*(.+)`)
	tagsLine    = regexp.MustCompile(`(?i)Tags:\s*(.+)`)
)

// createdFormats are tried in order against the Created: header value.
var createdFormats = []string{
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
}

// parseEntry turns a drop file's text into an entry input. The entry date
// comes from a "Created:" header when present, otherwise from a
// YYYY-MM-DD filename. Returns false when neither yields a date.
func parseEntry(text, filename string) (models.EntryInput, bool) {
	var date time.Time
	if m := createdLine.FindStringSubmatch(text); m != nil {
		value := strings.TrimSpace(m[1])
		for _, format := range createdFormats {
			if parsed, err := time.Parse(format, value); err == nil {
				date = parsed
				break
			}
		}
	}
	if date.IsZero() {
		base := strings.SplitN(filepath.Base(filename), ".", 2)[0]
		parsed, err := time.Parse("2006-01-02", base)
		if err != nil {
			return models.EntryInput{}, false
		}
		date = parsed
	}

	var tags string
	if m := tagsLine.FindStringSubmatch(text); m != nil {
		tags = strings.TrimSpace(m[1])
	}

	return models.EntryInput{
		Date:    date,
		Content: cleanContent(text),
		Tags:    tags,
	}, true
}

// cleanContent strips markdown titles and the Created:/Tags: header lines,
// leaving only the entry body.
func cleanContent(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "created:") ||
			strings.HasPrefix(trimmed, "tags:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
