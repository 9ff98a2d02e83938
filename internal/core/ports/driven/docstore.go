package driven

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// DocumentStore persists documents, clauses, summaries and timelines.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// UpdateDocumentState advances a document's lifecycle state. The
	// transition is validated against the state machine and persisted
	// atomically with the error message (which may be empty).
	// Returns domain.ErrInvalidInput for a disallowed transition.
	UpdateDocumentState(ctx context.Context, id string, state domain.DocumentState, errMsg string) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and everything derived from it.
	DeleteDocument(ctx context.Context, id string) error

	// SaveClauses stores the ordered clause set for a document.
	SaveClauses(ctx context.Context, clauses []domain.Clause) error

	// UpdateClause updates a single clause's analysis fields and state.
	UpdateClause(ctx context.Context, clause *domain.Clause) error

	// GetClauses retrieves all clauses for a document ordered by
	// sequence number.
	GetClauses(ctx context.Context, documentID string) ([]domain.Clause, error)

	// GetClause retrieves a specific clause by ID.
	GetClause(ctx context.Context, id string) (*domain.Clause, error)

	// ClausesInState returns clause IDs for a document in the given
	// state. Used to reconcile interrupted two-phase writes.
	ClausesInState(ctx context.Context, documentID string, state domain.ClauseState) ([]string, error)

	// SaveResult persists the frozen summary and navigation for a
	// completed document.
	SaveResult(ctx context.Context, summary *domain.DocumentSummary, nav *domain.TimelineNavigation) error

	// GetSummary retrieves the summary for a completed document.
	GetSummary(ctx context.Context, documentID string) (*domain.DocumentSummary, error)

	// GetNavigation retrieves the navigation for a completed document.
	GetNavigation(ctx context.Context, documentID string) (*domain.TimelineNavigation, error)

	// Close releases resources.
	Close() error
}
