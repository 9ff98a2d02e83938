package extractors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps upload formats to extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.Extractor),
	}
}

// Register adds an extractor. Later registrations for the same format
// replace earlier ones.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[strings.ToLower(e.Format())] = e
}

// ForFormat returns the extractor for the given format.
func (r *Registry) ForFormat(format string) (driven.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
	}
	return e, nil
}

// SupportedFormats returns all registered formats, sorted.
func (r *Registry) SupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// FormatForUpload derives the upload format from the declared filename
// extension, falling back to the MIME type.
func FormatForUpload(upload *domain.RawUpload) string {
	name := strings.ToLower(upload.Filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "pdf"
	case strings.HasSuffix(name, ".docx"):
		return "docx"
	case strings.HasSuffix(name, ".txt"):
		return "txt"
	}

	switch upload.MIMEType {
	case "application/pdf":
		return "pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "text/plain":
		return "txt"
	}

	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return ""
}
