package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Document-fatal extraction and segmentation errors. These abort
	// the whole document before any clause exists.

	// ErrUnsupportedFormat indicates the upload's declared format is
	// not in the supported set.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument indicates the document failed structural parsing.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrSizeLimitExceeded indicates the upload exceeds the configured
	// byte ceiling. Checked before parsing to bound worst-case cost.
	ErrSizeLimitExceeded = errors.New("size limit exceeded")

	// ErrNoExtractableContent indicates segmentation produced no
	// clauses even after fallback chunking. Terminal, not retried.
	ErrNoExtractableContent = errors.New("no extractable content")

	// Clause-local errors. These degrade a single clause without
	// failing the document.

	// ErrAnalysisProviderFailure indicates every judge provider in the
	// chain failed for a clause.
	ErrAnalysisProviderFailure = errors.New("analysis provider failure")

	// ErrEmbeddingWriteFailure indicates the embedding index insert
	// failed after bounded retries.
	ErrEmbeddingWriteFailure = errors.New("embedding write failure")

	// Request-local client errors. No state mutation.

	// ErrNoGroundingContext indicates a RAG query was scoped to a
	// document with zero analysed clauses.
	ErrNoGroundingContext = errors.New("no grounding context")

	// ErrDocumentNotCompleted indicates an operation that requires a
	// completed document was attempted earlier in the lifecycle.
	ErrDocumentNotCompleted = errors.New("document not completed")

	// ErrCancelled indicates document processing was cancelled.
	ErrCancelled = errors.New("cancelled")

	// Service availability errors.

	// ErrJudgeUnavailable indicates no judge provider is configured.
	ErrJudgeUnavailable = errors.New("judge service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Clause indexing and RAG are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the clause index is not
	// configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)
