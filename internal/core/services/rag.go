package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
	"github.com/lexatlas-labs/clauseline-cli/internal/metrics"
)

// Ensure RAGService implements the interface.
var _ driving.RAGService = (*RAGService)(nil)

// KnowledgeDocumentID is the reserved index scope for seeded reference
// material. It never collides with generated document IDs.
const KnowledgeDocumentID = "legal-kb"

// DefaultTopK is the retrieval depth when the caller does not specify
// one.
const DefaultTopK = 5

// maxExplainChars bounds the clause excerpt embedded into an
// explanation question.
const maxExplainChars = 600

// RAGConfig wires the RAG service dependencies.
type RAGConfig struct {
	Store     driven.DocumentStore
	Knowledge driven.KnowledgeStore
	Embedder  driven.EmbeddingService
	Index     driven.ClauseIndex
	Judges    driven.JudgeChain
	Metrics   *metrics.Metrics
}

// RAGService answers free-text questions grounded in analysed clauses
// and seeded reference material. Confidence is derived from retrieval
// similarity alone, never from provider self-report.
type RAGService struct {
	store     driven.DocumentStore
	knowledge driven.KnowledgeStore
	embedder  driven.EmbeddingService
	index     driven.ClauseIndex
	judges    driven.JudgeChain
	metrics   *metrics.Metrics
}

// NewRAGService creates the RAG query engine.
func NewRAGService(cfg RAGConfig) *RAGService {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewUnregistered()
	}
	return &RAGService{
		store:     cfg.Store,
		knowledge: cfg.Knowledge,
		embedder:  cfg.Embedder,
		index:     cfg.Index,
		judges:    cfg.Judges,
		metrics:   cfg.Metrics,
	}
}

// Ask retrieves the most similar clauses and synthesises a grounded
// answer through the judge chain's generate path.
func (s *RAGService) Ask(ctx context.Context, question string, opts driving.AskOptions) (*domain.RAGAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if s.judges == nil {
		return nil, domain.ErrJudgeUnavailable
	}

	// A scoped query must have grounding before any embedding or AI
	// call is spent on it.
	if opts.DocumentID != "" {
		if _, err := s.store.GetDocument(ctx, opts.DocumentID); err != nil {
			return nil, err
		}
		analysed, err := s.store.ClausesInState(ctx, opts.DocumentID, domain.ClauseStateAnalyzed)
		if err != nil {
			return nil, fmt.Errorf("check grounding: %w", err)
		}
		if len(analysed) == 0 {
			s.metrics.RAGQueriesTotal.WithLabelValues("no_context").Inc()
			return nil, fmt.Errorf("document %s: %w", opts.DocumentID, domain.ErrNoGroundingContext)
		}
	}

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		s.metrics.RAGQueriesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("embed question: %w", err)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	hits, err := s.index.Search(ctx, vector, topK, opts.DocumentID)
	if err != nil {
		s.metrics.RAGQueriesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("search index: %w", err)
	}

	sources := s.resolveSources(ctx, hits)
	if len(sources) == 0 {
		s.metrics.RAGQueriesTotal.WithLabelValues("no_context").Inc()
		return nil, domain.ErrNoGroundingContext
	}

	answer, err := s.judges.Generate(ctx, buildAnswerPrompt(question, sources), driven.GenerateOptions{
		MaxTokens:   600,
		Temperature: 0.3,
	})
	if err != nil {
		s.metrics.RAGQueriesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	s.metrics.RAGQueriesTotal.WithLabelValues("ok").Inc()
	return &domain.RAGAnswer{
		Question:        question,
		Answer:          strings.TrimSpace(answer),
		ConfidenceScore: retrievalConfidence(sources),
		Sources:         sources,
	}, nil
}

// Explain produces a fresh contextual explanation of one clause,
// scoped to its own document.
func (s *RAGService) Explain(ctx context.Context, documentID, clauseID string) (*domain.RAGAnswer, error) {
	clause, err := s.store.GetClause(ctx, clauseID)
	if err != nil {
		return nil, err
	}
	if clause.DocumentID != documentID {
		return nil, fmt.Errorf("clause %s does not belong to document %s: %w",
			clauseID, documentID, domain.ErrNotFound)
	}

	excerpt := clause.Text
	if len(excerpt) > maxExplainChars {
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxExplainChars
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}
	question := fmt.Sprintf(
		"Explain what the following clause means for the signer, in the context of the rest of the document:\n\n%s",
		excerpt)

	return s.Ask(ctx, question, driving.AskOptions{DocumentID: documentID})
}

// resolveSources turns index hits into grounding sources. Hits whose
// backing record disappeared are skipped.
func (s *RAGService) resolveSources(ctx context.Context, hits []driven.ClauseHit) []domain.RAGSource {
	var kbEntries map[string]domain.KnowledgeEntry

	//nolint:prealloc // unresolvable hits are skipped
	var sources []domain.RAGSource
	for _, hit := range hits {
		if hit.DocumentID == KnowledgeDocumentID {
			if kbEntries == nil {
				kbEntries = s.loadKnowledgeEntries(ctx)
			}
			entry, ok := kbEntries[hit.ClauseID]
			if !ok {
				continue
			}
			sources = append(sources, domain.RAGSource{
				DocumentID: KnowledgeDocumentID,
				ClauseID:   entry.ID,
				Text:       entry.Title + ": " + entry.Content,
				Similarity: hit.Similarity,
			})
			continue
		}

		clause, err := s.store.GetClause(ctx, hit.ClauseID)
		if err != nil {
			logger.Debug("rag: clause %s not resolvable: %v", hit.ClauseID, err)
			continue
		}
		sources = append(sources, domain.RAGSource{
			DocumentID:     clause.DocumentID,
			ClauseID:       clause.ID,
			SequenceNumber: clause.SequenceNumber,
			Text:           clause.Text,
			Similarity:     hit.Similarity,
		})
	}
	return sources
}

// loadKnowledgeEntries maps seeded entries by ID for source resolution.
func (s *RAGService) loadKnowledgeEntries(ctx context.Context) map[string]domain.KnowledgeEntry {
	byID := make(map[string]domain.KnowledgeEntry)
	if s.knowledge == nil {
		return byID
	}
	entries, err := s.knowledge.ListEntries(ctx)
	if err != nil {
		logger.Debug("rag: knowledge entries not loadable: %v", err)
		return byID
	}
	for _, entry := range entries {
		byID[entry.ID] = entry
	}
	return byID
}

// retrievalConfidence is the mean similarity of the sources actually
// used, clamped into [0,1].
func retrievalConfidence(sources []domain.RAGSource) float64 {
	if len(sources) == 0 {
		return 0
	}
	var sum float64
	for _, src := range sources {
		sum += src.Similarity
	}
	confidence := sum / float64(len(sources))
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// buildAnswerPrompt assembles the grounded synthesis prompt. Sources
// are numbered so the answer can reference them.
func buildAnswerPrompt(question string, sources []domain.RAGSource) string {
	var b strings.Builder
	b.WriteString("You are a legal document assistant. Answer the question using ONLY the context below. ")
	b.WriteString("If the context does not contain the answer, say so plainly. Do not invent legal advice.\n\nContext:\n")
	for i, src := range sources {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, strings.TrimSpace(src.Text))
	}
	fmt.Fprintf(&b, "Question: %s\n\nAnswer:", question)
	return b.String()
}
