package driving

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// AnalysisService runs documents through the analysis pipeline and
// exposes their lifecycle to external actors.
type AnalysisService interface {
	// Submit validates an upload, persists it in the queued state and
	// starts asynchronous processing. Returns the document immediately;
	// progress is observed via Status.
	Submit(ctx context.Context, upload *domain.RawUpload, opts domain.SubmitOptions) (*domain.Document, error)

	// Status reports a document's current state, progress and ETA.
	Status(ctx context.Context, documentID string) (*domain.ProcessingStatus, error)

	// Result returns the frozen analysis artefact for a completed
	// document. Returns domain.ErrDocumentNotCompleted before then.
	Result(ctx context.Context, documentID string) (*domain.AnalysisResult, error)

	// Clauses returns a document's clauses in sequence order, in
	// whatever analysis state they currently hold.
	Clauses(ctx context.Context, documentID string) ([]domain.Clause, error)

	// List returns all known documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Cancel stops processing of an in-flight document. The document
	// moves to failed; already-persisted clause analyses are kept.
	Cancel(ctx context.Context, documentID string) error

	// Delete removes a document and everything derived from it,
	// including index vectors.
	Delete(ctx context.Context, documentID string) error
}
