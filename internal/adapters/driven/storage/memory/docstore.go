// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and for ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu          sync.RWMutex
	documents   map[string]domain.Document
	clauses     map[string][]domain.Clause
	summaries   map[string]domain.DocumentSummary
	navigations map[string]domain.TimelineNavigation
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:   make(map[string]domain.Document),
		clauses:     make(map[string][]domain.Clause),
		summaries:   make(map[string]domain.DocumentSummary),
		navigations: make(map[string]domain.TimelineNavigation),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	s.documents[doc.ID] = *doc
	return nil
}

// UpdateDocumentState advances a document's lifecycle state, validating
// the transition against the state machine.
func (s *DocumentStore) UpdateDocumentState(_ context.Context, id string, state domain.DocumentState, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !doc.State.CanTransition(state) {
		return fmt.Errorf("%w: transition %s -> %s", domain.ErrInvalidInput, doc.State, state)
	}
	doc.State = state
	doc.FailureReason = errMsg
	doc.UpdatedAt = time.Now().UTC()
	s.documents[id] = doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for id := range s.documents {
		docs = append(docs, s.documents[id])
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// DeleteDocument removes a document and everything derived from it.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.clauses, id)
	delete(s.summaries, id)
	delete(s.navigations, id)
	return nil
}

// SaveClauses stores the ordered clause set for a document.
func (s *DocumentStore) SaveClauses(_ context.Context, clauses []domain.Clause) error {
	if len(clauses) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docID := clauses[0].DocumentID
	stored := make([]domain.Clause, len(clauses))
	copy(stored, clauses)
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].SequenceNumber < stored[j].SequenceNumber
	})
	s.clauses[docID] = stored
	return nil
}

// UpdateClause updates a single clause's analysis fields and state.
func (s *DocumentStore) UpdateClause(_ context.Context, clause *domain.Clause) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clauses, ok := s.clauses[clause.DocumentID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range clauses {
		if clauses[i].ID == clause.ID {
			clauses[i] = *clause
			return nil
		}
	}
	return domain.ErrNotFound
}

// GetClauses retrieves all clauses for a document ordered by sequence number.
func (s *DocumentStore) GetClauses(_ context.Context, documentID string) ([]domain.Clause, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clauses, ok := s.clauses[documentID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.Clause, len(clauses))
	copy(out, clauses)
	return out, nil
}

// GetClause retrieves a specific clause by ID.
func (s *DocumentStore) GetClause(_ context.Context, id string) (*domain.Clause, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, clauses := range s.clauses {
		for i := range clauses {
			if clauses[i].ID == id {
				clause := clauses[i]
				return &clause, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// ClausesInState returns clause IDs for a document in the given state.
func (s *DocumentStore) ClausesInState(_ context.Context, documentID string, state domain.ClauseState) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, clause := range s.clauses[documentID] {
		if clause.State == state {
			ids = append(ids, clause.ID)
		}
	}
	return ids, nil
}

// SaveResult persists the frozen summary and navigation for a completed document.
func (s *DocumentStore) SaveResult(_ context.Context, summary *domain.DocumentSummary, nav *domain.TimelineNavigation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.DocumentID] = *summary
	s.navigations[summary.DocumentID] = *nav
	return nil
}

// GetSummary retrieves the summary for a completed document.
func (s *DocumentStore) GetSummary(_ context.Context, documentID string) (*domain.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &summary, nil
}

// GetNavigation retrieves the navigation for a completed document.
func (s *DocumentStore) GetNavigation(_ context.Context, documentID string) (*domain.TimelineNavigation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nav, ok := s.navigations[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &nav, nil
}

// Close releases resources.
func (s *DocumentStore) Close() error {
	return nil
}
