package domain

import "time"

// DocumentType classifies the kind of legal document under analysis.
type DocumentType string

// Supported document types.
const (
	DocTypeRentalAgreement DocumentType = "rental_agreement"
	DocTypeLoanContract    DocumentType = "loan_contract"
	DocTypeTermsOfService  DocumentType = "terms_of_service"
	DocTypeOther           DocumentType = "other"
)

// ParseDocumentType maps a raw string onto a known DocumentType,
// falling back to DocTypeOther for anything unrecognised.
func ParseDocumentType(s string) DocumentType {
	switch DocumentType(s) {
	case DocTypeRentalAgreement, DocTypeLoanContract, DocTypeTermsOfService:
		return DocumentType(s)
	default:
		return DocTypeOther
	}
}

// DocumentState is the processing lifecycle state of a document.
// Transitions are strictly forward; there is no retry back to an
// earlier state.
type DocumentState string

// Document lifecycle states.
const (
	StateQueued     DocumentState = "queued"
	StateExtracting DocumentState = "extracting"
	StateSegmenting DocumentState = "segmenting"
	StateAnalyzing  DocumentState = "analyzing"
	StateAssembling DocumentState = "assembling"
	StateCompleted  DocumentState = "completed"
	StateFailed     DocumentState = "failed"
)

// Terminal reports whether the state is a terminal one.
func (s DocumentState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// stateOrder defines the forward ordering of lifecycle states.
var stateOrder = map[DocumentState]int{
	StateQueued:     0,
	StateExtracting: 1,
	StateSegmenting: 2,
	StateAnalyzing:  3,
	StateAssembling: 4,
	StateCompleted:  5,
	StateFailed:     5,
}

// CanTransition reports whether a document may move from s to next.
// Any non-terminal state may move directly to failed.
func (s DocumentState) CanTransition(next DocumentState) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	return stateOrder[next] == stateOrder[s]+1
}

// Document represents an ingested legal document and its analysis
// lifecycle. The clause list is append-only during segmenting and
// fixed in length once analyzing begins.
type Document struct {
	// ID is the unique identifier, generated at ingestion.
	ID string

	// Title is derived from the extracted text or the upload filename.
	Title string

	// Type is the declared document classification.
	Type DocumentType

	// State is the current lifecycle state.
	State DocumentState

	// FailureReason records why the document entered the failed state.
	FailureReason string

	// ByteSize is the raw upload size in bytes.
	ByteSize int64

	// PageCount is the extracted page count.
	PageCount int

	// TotalClauses is the number of clauses fixed at segmentation time.
	TotalClauses int

	// CreatedAt is when the document was submitted.
	CreatedAt time.Time

	// UpdatedAt is when the document record last changed.
	UpdatedAt time.Time
}

// RawUpload carries the bytes and declared format of a submitted
// document. The pipeline never persists the raw bytes.
type RawUpload struct {
	// Filename is the declared name, used for extension detection.
	Filename string

	// MIMEType is the declared content type, when known.
	MIMEType string

	// Content is the raw document bytes.
	Content []byte
}

// Extraction is the output of the text extraction stage.
type Extraction struct {
	// Text is the full plain-text content.
	Text string

	// PageOffsets holds the byte offset at which each page begins.
	// A single-page document has one entry at offset 0.
	PageOffsets []int

	// Title is a best-effort document title from format metadata.
	Title string
}

// PageCount returns the number of pages in the extraction.
func (e *Extraction) PageCount() int {
	if len(e.PageOffsets) == 0 {
		return 1
	}
	return len(e.PageOffsets)
}

// PageForOffset returns the 1-based page containing the given byte
// offset in the extracted text.
func (e *Extraction) PageForOffset(offset int) int {
	page := 1
	for i, start := range e.PageOffsets {
		if offset >= start {
			page = i + 1
		}
	}
	return page
}

// SubmitOptions configures a single document submission. Provider
// preference travels with the submission so concurrent documents may
// use different chains without interference.
type SubmitOptions struct {
	// DocumentType is the declared classification.
	DocumentType DocumentType

	// ProviderPreference is the ordered list of judge provider names
	// to attempt. Empty means the configured default order.
	ProviderPreference []string
}

// ProcessingStatus is the polled view of a document's progress.
type ProcessingStatus struct {
	// DocumentID identifies the document.
	DocumentID string

	// State is the current lifecycle state.
	State DocumentState

	// FailureReason is set when State is failed.
	FailureReason string

	// Progress is the fraction of clauses with a terminal outcome,
	// in [0,1]. Only meaningful while State is analyzing.
	Progress float64

	// ETA is the estimated time remaining, derived from observed
	// per-clause latency. Zero when unknown.
	ETA time.Duration
}
