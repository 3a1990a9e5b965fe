package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// wordDocumentPath is the main document body inside a .docx package.
const wordDocumentPath = "word/document.xml"

// textRun matches the inner text of <w:t> runs, attributes included.
var textRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractDOCX pulls text out of .docx bytes. A .docx is a zip holding
// word/document.xml; the visible text lives in <w:t> runs, so matching those
// works regardless of paragraph or run attributes.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract: docx: not a zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != wordDocumentPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract: docx: open %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			rc.Close()
			return "", fmt.Errorf("extract: docx: read %s: %w", f.Name, err)
		}
		rc.Close()

		runs := textRun.FindAllStringSubmatch(buf.String(), -1)
		var b strings.Builder
		for i, r := range runs {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(r[1]))
		}
		return strings.TrimSpace(b.String()), nil
	}
	return "", fmt.Errorf("extract: docx: %s not found", wordDocumentPath)
}
