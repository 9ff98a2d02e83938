// Package memory provides an in-process clause index, used in tests and
// for runs without a PostgreSQL instance.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure ClauseIndex implements the interface.
var _ driven.ClauseIndex = (*ClauseIndex)(nil)

// entry is one indexed clause vector.
type entry struct {
	clauseID   string
	documentID string
	sequence   int
	embedding  []float32
}

// ClauseIndex is an in-memory implementation of driven.ClauseIndex
// using exact cosine similarity.
type ClauseIndex struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewClauseIndex creates a new in-memory clause index.
func NewClauseIndex() *ClauseIndex {
	return &ClauseIndex{
		entries: make(map[string]entry),
	}
}

// Add inserts or replaces the vector for the given clause.
func (idx *ClauseIndex) Add(_ context.Context, clauseID, documentID string, sequence int, embedding []float32) error {
	if clauseID == "" || documentID == "" {
		return domain.ErrInvalidInput
	}
	stored := make([]float32, len(embedding))
	copy(stored, embedding)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[clauseID] = entry{clauseID: clauseID, documentID: documentID, sequence: sequence, embedding: stored}
	return nil
}

// Delete removes a clause's vector from the index.
func (idx *ClauseIndex) Delete(_ context.Context, clauseID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.entries, clauseID)
	return nil
}

// DeleteDocument removes all vectors belonging to a document.
func (idx *ClauseIndex) DeleteDocument(_ context.Context, documentID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for id, e := range idx.entries {
		if e.documentID == documentID {
			delete(idx.entries, id)
		}
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector. Exact
// similarity ties break on ascending sequence number, so duplicate
// boilerplate clauses come back in document order.
func (idx *ClauseIndex) Search(_ context.Context, query []float32, k int, documentID string) ([]driven.ClauseHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.nearest(query, k, documentID, ""), nil
}

// Related finds the k nearest neighbours of an indexed clause within
// its own document, excluding the clause itself.
func (idx *ClauseIndex) Related(_ context.Context, clauseID string, k int) ([]driven.ClauseHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	anchor, ok := idx.entries[clauseID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return idx.nearest(anchor.embedding, k, anchor.documentID, clauseID), nil
}

// nearest ranks entries against the query. Callers hold the lock.
func (idx *ClauseIndex) nearest(query []float32, k int, documentID, excludeID string) []driven.ClauseHit {
	if k <= 0 {
		return nil
	}

	var hits []driven.ClauseHit
	for _, e := range idx.entries {
		if documentID != "" && e.documentID != documentID {
			continue
		}
		if excludeID != "" && e.clauseID == excludeID {
			continue
		}
		hits = append(hits, driven.ClauseHit{
			ClauseID:       e.clauseID,
			DocumentID:     e.documentID,
			SequenceNumber: e.sequence,
			Similarity:     cosineSimilarity(query, e.embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].SequenceNumber < hits[j].SequenceNumber
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Close releases resources.
func (idx *ClauseIndex) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
