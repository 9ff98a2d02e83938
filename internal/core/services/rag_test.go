package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/storage/memory"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
)

type ragFixture struct {
	service   *RAGService
	store     *memory.DocumentStore
	knowledge *mockKnowledge
	embedder  *mockEmbedder
	index     *mockIndex
	chain     *mockChain
}

func newRAGFixture(t *testing.T) *ragFixture {
	t.Helper()

	f := &ragFixture{
		store:     memory.NewDocumentStore(),
		knowledge: &mockKnowledge{},
		embedder:  newMockEmbedder(),
		index:     newMockIndex(),
		chain:     &mockChain{provider: domain.AIProviderOllama, generated: "The rent is $2,000 per month [1]."},
	}
	f.service = NewRAGService(RAGConfig{
		Store:     f.store,
		Knowledge: f.knowledge,
		Embedder:  f.embedder,
		Index:     f.index,
		Judges:    f.chain,
	})
	return f
}

// seedAnalysedClause stores a document with one analysed clause and
// points the index at it.
func (f *ragFixture) seedAnalysedClause(t *testing.T, similarity float64) domain.Clause {
	t.Helper()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", State: domain.StateCompleted, Type: domain.DocTypeRentalAgreement}
	require.NoError(t, f.store.SaveDocument(ctx, doc))

	clause := domain.Clause{
		ID:             "c-1",
		DocumentID:     "doc-1",
		SequenceNumber: 1,
		Title:          "Payment",
		Text:           "The tenant shall pay rent of $2,000 per month.",
		State:          domain.ClauseStateAnalyzed,
		SeverityLevel:  2,
	}
	require.NoError(t, f.store.SaveClauses(ctx, []domain.Clause{clause}))

	f.index.hits = []driven.ClauseHit{
		{ClauseID: clause.ID, DocumentID: clause.DocumentID, Similarity: similarity},
	}
	return clause
}

func TestAsk_RejectsEmptyQuestion(t *testing.T) {
	f := newRAGFixture(t)

	_, err := f.service.Ask(context.Background(), "   ", driving.AskOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_EmbeddingUnavailable(t *testing.T) {
	f := newRAGFixture(t)
	f.service = NewRAGService(RAGConfig{Store: f.store, Index: f.index, Judges: f.chain})

	_, err := f.service.Ask(context.Background(), "How much is the rent?", driving.AskOptions{})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestAsk_UnknownDocument(t *testing.T) {
	f := newRAGFixture(t)

	_, err := f.service.Ask(context.Background(), "How much is the rent?", driving.AskOptions{DocumentID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAsk_NoGroundingBeforeAnyAICall(t *testing.T) {
	f := newRAGFixture(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", State: domain.StateAnalyzing, Type: domain.DocTypeOther}
	require.NoError(t, f.store.SaveDocument(ctx, doc))
	require.NoError(t, f.store.SaveClauses(ctx, []domain.Clause{
		{ID: "c-1", DocumentID: "doc-1", SequenceNumber: 1, State: domain.ClauseStatePending},
	}))

	_, err := f.service.Ask(ctx, "How much is the rent?", driving.AskOptions{DocumentID: "doc-1"})
	assert.ErrorIs(t, err, domain.ErrNoGroundingContext)
	assert.Zero(t, f.embedder.embedCalls(), "no embedding call without grounding")
	assert.Empty(t, f.chain.prompts, "no generation call without grounding")
}

func TestAsk_NoHitsMeansNoGrounding(t *testing.T) {
	f := newRAGFixture(t)

	_, err := f.service.Ask(context.Background(), "How much is the rent?", driving.AskOptions{})
	assert.ErrorIs(t, err, domain.ErrNoGroundingContext)
	assert.Empty(t, f.chain.prompts)
}

func TestAsk_AnswersFromRetrievedClauses(t *testing.T) {
	f := newRAGFixture(t)
	clause := f.seedAnalysedClause(t, 0.9)

	answer, err := f.service.Ask(context.Background(), "How much is the rent?", driving.AskOptions{DocumentID: "doc-1"})
	require.NoError(t, err)

	assert.Equal(t, "How much is the rent?", answer.Question)
	assert.Equal(t, "The rent is $2,000 per month [1].", answer.Answer)
	assert.InDelta(t, 0.9, answer.ConfidenceScore, 0.001)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, clause.ID, answer.Sources[0].ClauseID)
	assert.Equal(t, clause.Text, answer.Sources[0].Text)

	require.Len(t, f.chain.prompts, 1)
	assert.Contains(t, f.chain.prompts[0], clause.Text)
	assert.Contains(t, f.chain.prompts[0], "How much is the rent?")
}

func TestAsk_ConfidenceFromRetrievalOnly(t *testing.T) {
	f := newRAGFixture(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", State: domain.StateCompleted, Type: domain.DocTypeOther}
	require.NoError(t, f.store.SaveDocument(ctx, doc))
	require.NoError(t, f.store.SaveClauses(ctx, []domain.Clause{
		{ID: "c-1", DocumentID: "doc-1", SequenceNumber: 1, Text: "First clause text.", State: domain.ClauseStateAnalyzed},
		{ID: "c-2", DocumentID: "doc-1", SequenceNumber: 2, Text: "Second clause text.", State: domain.ClauseStateAnalyzed},
	}))
	f.index.hits = []driven.ClauseHit{
		{ClauseID: "c-1", DocumentID: "doc-1", Similarity: 0.8},
		{ClauseID: "c-2", DocumentID: "doc-1", Similarity: 0.6},
	}
	// The provider's self-reported confidence must never leak in.
	f.chain.judgment.ConfidenceScore = 1.0

	answer, err := f.service.Ask(ctx, "What do the clauses say?", driving.AskOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, answer.ConfidenceScore, 0.001)
	assert.Len(t, answer.Sources, 2)
}

func TestAsk_ResolvesKnowledgeEntries(t *testing.T) {
	f := newRAGFixture(t)
	ctx := context.Background()

	require.NoError(t, f.knowledge.SeedEntries(ctx, []domain.KnowledgeEntry{
		{ID: "kb-1", Title: "Late payment fees", Content: "Late fees must be reasonable."},
	}))
	f.index.hits = []driven.ClauseHit{
		{ClauseID: "kb-1", DocumentID: KnowledgeDocumentID, Similarity: 0.75},
	}

	answer, err := f.service.Ask(ctx, "Are late fees capped?", driving.AskOptions{})
	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, KnowledgeDocumentID, answer.Sources[0].DocumentID)
	assert.Contains(t, answer.Sources[0].Text, "Late payment fees")
}

func TestAsk_SkipsUnresolvableHits(t *testing.T) {
	f := newRAGFixture(t)
	clause := f.seedAnalysedClause(t, 0.9)
	f.index.hits = append(f.index.hits, driven.ClauseHit{
		ClauseID: "gone", DocumentID: "doc-1", Similarity: 0.5,
	})

	answer, err := f.service.Ask(context.Background(), "How much is the rent?", driving.AskOptions{DocumentID: "doc-1"})
	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, clause.ID, answer.Sources[0].ClauseID)
}

func TestExplain_RejectsForeignClause(t *testing.T) {
	f := newRAGFixture(t)
	f.seedAnalysedClause(t, 0.9)

	_, err := f.service.Explain(context.Background(), "other-doc", "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExplain_GeneratesScopedAnswer(t *testing.T) {
	f := newRAGFixture(t)
	clause := f.seedAnalysedClause(t, 0.85)

	answer, err := f.service.Explain(context.Background(), "doc-1", clause.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, answer.Answer)
	assert.Contains(t, answer.Question, clause.Text)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "doc-1", answer.Sources[0].DocumentID)
}

func TestExplain_ExcerptKeepsMultiByteRunesIntact(t *testing.T) {
	f := newRAGFixture(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", State: domain.StateCompleted, Type: domain.DocTypeOther}
	require.NoError(t, f.store.SaveDocument(ctx, doc))

	// Long clause of two-byte runes, offset so the excerpt cap lands
	// mid-rune.
	clause := domain.Clause{
		ID:             "c-1",
		DocumentID:     "doc-1",
		SequenceNumber: 1,
		Text:           "a" + strings.Repeat("§", maxExplainChars),
		State:          domain.ClauseStateAnalyzed,
	}
	require.NoError(t, f.store.SaveClauses(ctx, []domain.Clause{clause}))
	f.index.hits = []driven.ClauseHit{
		{ClauseID: clause.ID, DocumentID: clause.DocumentID, Similarity: 0.8},
	}

	answer, err := f.service.Explain(ctx, "doc-1", clause.ID)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(answer.Question))
	assert.NotContains(t, answer.Question, string(utf8.RuneError))
}

func TestKnowledgeService_SeedIsIdempotent(t *testing.T) {
	knowledge := &mockKnowledge{}
	embedder := newMockEmbedder()
	index := newMockIndex()
	svc := NewKnowledgeService(knowledge, embedder, index)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, svc.Seed(ctx))
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))
	assert.Equal(t, len(first), index.stored())
}

func TestKnowledgeService_SeedWithoutEmbedding(t *testing.T) {
	knowledge := &mockKnowledge{}
	svc := NewKnowledgeService(knowledge, nil, nil)

	require.NoError(t, svc.Seed(context.Background()))
	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
