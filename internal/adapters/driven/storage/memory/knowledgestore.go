package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure KnowledgeStore implements the interface.
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore is an in-memory implementation of driven.KnowledgeStore.
type KnowledgeStore struct {
	mu      sync.RWMutex
	entries map[string]domain.KnowledgeEntry
}

// NewKnowledgeStore creates a new in-memory knowledge store.
func NewKnowledgeStore() *KnowledgeStore {
	return &KnowledgeStore{
		entries: make(map[string]domain.KnowledgeEntry),
	}
}

// SeedEntries inserts entries that do not already exist.
func (s *KnowledgeStore) SeedEntries(_ context.Context, entries []domain.KnowledgeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, entry := range entries {
		if entry.ID == "" {
			return domain.ErrInvalidInput
		}
		if _, exists := s.entries[entry.ID]; exists {
			continue
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		s.entries[entry.ID] = entry
	}
	return nil
}

// EntriesForCategories returns entries tagged with any of the given categories.
func (s *KnowledgeStore) EntriesForCategories(ctx context.Context, categories []string) ([]domain.KnowledgeEntry, error) {
	all, err := s.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var matched []domain.KnowledgeEntry
	for _, entry := range all {
		for _, c := range entry.Categories {
			if wanted[c] {
				matched = append(matched, entry)
				break
			}
		}
	}
	return matched, nil
}

// ListEntries returns all entries ordered by ID.
func (s *KnowledgeStore) ListEntries(_ context.Context) ([]domain.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.KnowledgeEntry, 0, len(s.entries))
	for id := range s.entries {
		entries = append(entries, s.entries[id])
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
