package driven

import "context"

// ClauseIndex provides semantic similarity search over clause embeddings.
// Backed by pgvector for approximate nearest neighbour search.
type ClauseIndex interface {
	// Add inserts or replaces the vector for the given clause. The
	// sequence number travels with the entry so equal-similarity
	// results have a stable order.
	Add(ctx context.Context, clauseID, documentID string, sequence int, embedding []float32) error

	// Delete removes a clause's vector from the index.
	Delete(ctx context.Context, clauseID string) error

	// DeleteDocument removes all vectors belonging to a document.
	DeleteDocument(ctx context.Context, documentID string) error

	// Search finds the k nearest neighbours to the query vector.
	// When documentID is non-empty, results are restricted to that
	// document's clauses. Results are ordered by descending
	// similarity; exact ties break on ascending sequence number.
	Search(ctx context.Context, query []float32, k int, documentID string) ([]ClauseHit, error)

	// Related finds the k nearest neighbours of an already indexed
	// clause within its own document, excluding the clause itself.
	// Ordering matches Search.
	Related(ctx context.Context, clauseID string, k int) ([]ClauseHit, error)

	// Close releases resources.
	Close() error
}

// ClauseHit represents a similarity search result.
type ClauseHit struct {
	// ClauseID is the matched clause.
	ClauseID string

	// DocumentID is the clause's parent document.
	DocumentID string

	// SequenceNumber is the clause's position within its document.
	SequenceNumber int

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
