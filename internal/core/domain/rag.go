package domain

import "time"

// RAGSource is a retrieved clause used to ground a generated answer.
type RAGSource struct {
	// DocumentID and ClauseID identify the grounding clause.
	DocumentID string
	ClauseID   string

	// SequenceNumber orders sources from the same document.
	SequenceNumber int

	// Text is the clause text used as context.
	Text string

	// Similarity is the cosine similarity to the question, 0..1.
	Similarity float64
}

// RAGAnswer is a grounded answer to a free-text question.
type RAGAnswer struct {
	// Question is the original question text.
	Question string

	// Answer is the synthesised response.
	Answer string

	// ConfidenceScore is derived from the similarity of the sources
	// actually used, not from model self-report, so it stays auditable.
	ConfidenceScore float64

	// Sources are the grounding clauses in retrieval order.
	Sources []RAGSource
}

// KnowledgeEntry is a seeded reference item the analysis and RAG
// stages may consult. Entries have fixed IDs so seeding is idempotent.
type KnowledgeEntry struct {
	// ID is the stable entry identifier.
	ID string

	// Title is the human-readable heading.
	Title string

	// Content is the reference text.
	Content string

	// ContentType classifies the entry (statute, regulation, ...).
	ContentType string

	// Jurisdiction scopes the entry's applicability.
	Jurisdiction string

	// Categories are document/clause type tags for filtering.
	Categories []string

	// CreatedAt is when the entry was first seeded.
	CreatedAt time.Time
}
