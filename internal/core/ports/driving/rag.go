package driving

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// RAGService answers free-text questions grounded in analysed clauses.
type RAGService interface {
	// Ask retrieves the most similar clauses and synthesises a grounded
	// answer. Returns domain.ErrNoGroundingContext when the scope holds
	// no analysed clauses; no AI call is made in that case.
	Ask(ctx context.Context, question string, opts AskOptions) (*domain.RAGAnswer, error)

	// Explain produces a fresh contextual explanation of one clause,
	// grounded in the rest of its document. Never cached on the clause.
	Explain(ctx context.Context, documentID, clauseID string) (*domain.RAGAnswer, error)
}

// AskOptions scopes and tunes a RAG query.
type AskOptions struct {
	// DocumentID restricts retrieval to one document. Empty means all
	// completed documents.
	DocumentID string

	// TopK is the number of clauses to retrieve. Zero means the default.
	TopK int
}

// KnowledgeService manages the seeded legal reference material.
type KnowledgeService interface {
	// Seed loads the built-in reference entries. Idempotent.
	Seed(ctx context.Context) error

	// List returns all knowledge entries.
	List(ctx context.Context) ([]domain.KnowledgeEntry, error)
}
