package plaintext

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the upload format this extractor handles.
func (e *Extractor) Format() string {
	return "txt"
}

// Extract decodes the upload as UTF-8, falling back to Latin-1 for
// invalid byte sequences. Plain text has no pagination, so the result
// is a single page.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawUpload) (*domain.Extraction, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := decode(raw.Content)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoExtractableContent
	}

	return &domain.Extraction{
		Text:        text,
		PageOffsets: []int{0},
		Title:       extractTitle(text, raw.Filename),
	}, nil
}

// decode interprets bytes as UTF-8 when valid, otherwise as Latin-1.
func decode(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes)
}

// extractTitle takes the first short non-empty line, falling back to
// the filename.
func extractTitle(content, filename string) string {
	for _, line := range strings.SplitN(content, "\n", 10) {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= 200 {
			return line
		}
	}

	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
