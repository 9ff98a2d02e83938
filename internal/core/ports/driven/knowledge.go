package driven

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// KnowledgeStore persists seeded legal reference material consulted
// during clause analysis and RAG answering.
type KnowledgeStore interface {
	// SeedEntries inserts entries that do not already exist. Entries
	// have stable IDs, so repeated seeding is a no-op.
	SeedEntries(ctx context.Context, entries []domain.KnowledgeEntry) error

	// EntriesForCategories returns entries tagged with any of the
	// given categories.
	EntriesForCategories(ctx context.Context, categories []string) ([]domain.KnowledgeEntry, error)

	// ListEntries returns all entries.
	ListEntries(ctx context.Context) ([]domain.KnowledgeEntry, error)
}
