package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// mockChain is a controllable judge chain. judgeErrOn fails only
// requests whose clause text contains the marker, for exercising
// clause-local degradation.
type mockChain struct {
	mu          sync.Mutex
	judgment    domain.Judgment
	provider    domain.AIProvider
	judgeErr    error
	judgeErrOn  string
	block       bool
	generated   string
	generateErr error

	judgeCalls  int
	preferences [][]domain.AIProvider
	prompts     []string
}

var _ driven.JudgeChain = (*mockChain)(nil)

func (c *mockChain) Judge(ctx context.Context, req driven.JudgeRequest, preference []domain.AIProvider) (*domain.Judgment, domain.AIProvider, error) {
	c.mu.Lock()
	c.judgeCalls++
	c.preferences = append(c.preferences, preference)
	block := c.block
	c.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, "", ctx.Err()
	}
	if c.judgeErr != nil {
		return nil, "", c.judgeErr
	}
	if c.judgeErrOn != "" && strings.Contains(req.ClauseText, c.judgeErrOn) {
		return nil, "", errors.New("all providers exhausted")
	}
	judgment := c.judgment
	return &judgment, c.provider, nil
}

func (c *mockChain) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()

	if c.generateErr != nil {
		return "", c.generateErr
	}
	return c.generated, nil
}

func (c *mockChain) Available() []domain.AIProvider {
	if c.provider == "" {
		return nil
	}
	return []domain.AIProvider{c.provider}
}

func (c *mockChain) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.judgeCalls
}

// mockEmbedder returns a fixed vector, optionally failing the first
// few calls to exercise retry paths.
type mockEmbedder struct {
	mu       sync.Mutex
	vector   []float32
	failures int
	embedErr error
	embeds   int
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{vector: []float32{1, 0, 0}}
}

func (e *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.embeds++
	if e.failures > 0 {
		e.failures--
		return nil, errors.New("transient embed failure")
	}
	if e.embedErr != nil {
		return nil, e.embedErr
	}
	vector := make([]float32, len(e.vector))
	copy(vector, e.vector)
	return vector, nil
}

func (e *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

func (e *mockEmbedder) Dimensions() int              { return len(e.vector) }
func (e *mockEmbedder) ModelName() string            { return "mock-embed" }
func (e *mockEmbedder) Ping(_ context.Context) error { return nil }
func (e *mockEmbedder) Close() error                 { return nil }

func (e *mockEmbedder) embedCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.embeds
}

// mockIndex records vectors and serves prepared search hits. Related
// is served from the recorded vectors so assembly-time linking works
// against it.
type mockIndex struct {
	mu        sync.Mutex
	addErr    error
	searchErr error
	hits      []driven.ClauseHit
	vectors   map[string][]float32
	docs      map[string]string
	seqs      map[string]int
}

var _ driven.ClauseIndex = (*mockIndex)(nil)

func newMockIndex() *mockIndex {
	return &mockIndex{
		vectors: make(map[string][]float32),
		docs:    make(map[string]string),
		seqs:    make(map[string]int),
	}
}

func (i *mockIndex) Add(_ context.Context, clauseID, documentID string, sequence int, embedding []float32) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.addErr != nil {
		return i.addErr
	}
	i.vectors[clauseID] = embedding
	i.docs[clauseID] = documentID
	i.seqs[clauseID] = sequence
	return nil
}

func (i *mockIndex) Delete(_ context.Context, clauseID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.vectors, clauseID)
	delete(i.docs, clauseID)
	delete(i.seqs, clauseID)
	return nil
}

func (i *mockIndex) DeleteDocument(_ context.Context, documentID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for clauseID, docID := range i.docs {
		if docID == documentID {
			delete(i.vectors, clauseID)
			delete(i.docs, clauseID)
			delete(i.seqs, clauseID)
		}
	}
	return nil
}

func (i *mockIndex) Search(_ context.Context, _ []float32, k int, documentID string) ([]driven.ClauseHit, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.searchErr != nil {
		return nil, i.searchErr
	}

	var hits []driven.ClauseHit
	for _, hit := range i.hits {
		if documentID != "" && hit.DocumentID != documentID {
			continue
		}
		hits = append(hits, hit)
		if len(hits) == k {
			break
		}
	}
	return hits, nil
}

func (i *mockIndex) Related(_ context.Context, clauseID string, k int) ([]driven.ClauseHit, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	anchor, ok := i.vectors[clauseID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	anchorDoc := i.docs[clauseID]

	var hits []driven.ClauseHit
	for id, vector := range i.vectors {
		if id == clauseID || i.docs[id] != anchorDoc {
			continue
		}
		hits = append(hits, driven.ClauseHit{
			ClauseID:       id,
			DocumentID:     anchorDoc,
			SequenceNumber: i.seqs[id],
			Similarity:     cosine(anchor, vector),
		})
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Similarity != hits[b].Similarity {
			return hits[a].Similarity > hits[b].Similarity
		}
		return hits[a].SequenceNumber < hits[b].SequenceNumber
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func (i *mockIndex) Close() error { return nil }

func (i *mockIndex) stored() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.vectors)
}

// mockKnowledge is an in-memory knowledge store.
type mockKnowledge struct {
	mu      sync.Mutex
	entries []domain.KnowledgeEntry
}

var _ driven.KnowledgeStore = (*mockKnowledge)(nil)

func (k *mockKnowledge) SeedEntries(_ context.Context, entries []domain.KnowledgeEntry) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	existing := make(map[string]bool, len(k.entries))
	for _, entry := range k.entries {
		existing[entry.ID] = true
	}
	for _, entry := range entries {
		if !existing[entry.ID] {
			k.entries = append(k.entries, entry)
		}
	}
	return nil
}

func (k *mockKnowledge) EntriesForCategories(_ context.Context, categories []string) ([]domain.KnowledgeEntry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var matched []domain.KnowledgeEntry
	for _, entry := range k.entries {
		for _, category := range entry.Categories {
			if wanted[category] {
				matched = append(matched, entry)
				break
			}
		}
	}
	return matched, nil
}

func (k *mockKnowledge) ListEntries(_ context.Context) ([]domain.KnowledgeEntry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entries := make([]domain.KnowledgeEntry, len(k.entries))
	copy(entries, k.entries)
	return entries, nil
}
