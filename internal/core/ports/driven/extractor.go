package driven

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// Extractor converts one upload format into analysable text.
// Implementations must be deterministic: the same bytes always yield
// the same extraction.
type Extractor interface {
	// Format returns the upload format this extractor handles
	// (e.g. "pdf", "docx", "txt").
	Format() string

	// Extract produces normalised text and page offsets from raw bytes.
	// Returns domain.ErrCorruptDocument if the bytes fail structural
	// parsing, and domain.ErrNoExtractableContent if parsing succeeds
	// but yields no usable text.
	Extract(ctx context.Context, raw *domain.RawUpload) (*domain.Extraction, error)
}

// ExtractorRegistry selects the appropriate extractor for an upload.
type ExtractorRegistry interface {
	// ForFormat returns the extractor for the given format.
	// Returns domain.ErrUnsupportedFormat if no extractor is registered.
	ForFormat(format string) (Extractor, error)

	// Register adds an extractor. Later registrations for the same
	// format replace earlier ones.
	Register(e Extractor)

	// SupportedFormats returns all registered formats, sorted.
	SupportedFormats() []string
}
