package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
	"github.com/lexatlas-labs/clauseline-cli/internal/extractors"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
	"github.com/lexatlas-labs/clauseline-cli/internal/metrics"
	"github.com/lexatlas-labs/clauseline-cli/internal/segmenter"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// maxKnowledgeEntries caps the reference material attached to a single
// judge request.
const maxKnowledgeEntries = 3

// Related-clause linking at assembly time.
const (
	relatedTopK          = 3
	relatedMinSimilarity = 0.5
)

// failTimeout bounds the state write when a pipeline fails after its
// context is gone.
const failTimeout = 10 * time.Second

// AnalysisConfig wires the analysis service dependencies.
// Embedder, Index and Knowledge are optional; without an embedder and
// index, clauses complete without vectors and RAG is disabled.
type AnalysisConfig struct {
	Store     driven.DocumentStore
	Registry  driven.ExtractorRegistry
	Segmenter *segmenter.Segmenter
	Judges    driven.JudgeChain
	Embedder  driven.EmbeddingService
	Index     driven.ClauseIndex
	Knowledge driven.KnowledgeStore
	Metrics   *metrics.Metrics
	Settings  domain.AnalysisSettings
}

// AnalysisService orchestrates the document pipeline: extraction,
// segmentation, per-clause AI analysis, embedding indexing and
// timeline assembly. Documents move strictly forward through their
// lifecycle; clause-local failures degrade the clause without failing
// the document.
type AnalysisService struct {
	store     driven.DocumentStore
	registry  driven.ExtractorRegistry
	segmenter *segmenter.Segmenter
	judges    driven.JudgeChain
	embedder  driven.EmbeddingService
	index     driven.ClauseIndex
	knowledge driven.KnowledgeStore
	metrics   *metrics.Metrics
	settings  domain.AnalysisSettings

	mu      sync.Mutex
	running map[string]*run
}

// run tracks one in-flight document pipeline.
type run struct {
	cancel context.CancelFunc

	mu            sync.Mutex
	clauseSeconds float64
	clausesDone   int
}

func (r *run) recordClause(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clauseSeconds += d.Seconds()
	r.clausesDone++
}

// meanClauseSeconds returns the observed mean per-clause latency, or 0
// when no clause has finished yet.
func (r *run) meanClauseSeconds() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clausesDone == 0 {
		return 0
	}
	return r.clauseSeconds / float64(r.clausesDone)
}

// NewAnalysisService creates the pipeline orchestrator.
func NewAnalysisService(cfg AnalysisConfig) *AnalysisService {
	if cfg.Segmenter == nil {
		cfg.Segmenter = segmenter.New()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewUnregistered()
	}
	if cfg.Settings.ClauseConcurrency <= 0 {
		cfg.Settings.ClauseConcurrency = 1
	}
	if cfg.Settings.EmbeddingRetries <= 0 {
		cfg.Settings.EmbeddingRetries = 1
	}

	return &AnalysisService{
		store:     cfg.Store,
		registry:  cfg.Registry,
		segmenter: cfg.Segmenter,
		judges:    cfg.Judges,
		embedder:  cfg.Embedder,
		index:     cfg.Index,
		knowledge: cfg.Knowledge,
		metrics:   cfg.Metrics,
		settings:  cfg.Settings,
		running:   make(map[string]*run),
	}
}

// Submit validates the upload, persists the document in the queued
// state and starts asynchronous processing.
func (s *AnalysisService) Submit(ctx context.Context, upload *domain.RawUpload, opts domain.SubmitOptions) (*domain.Document, error) {
	if upload == nil {
		return nil, fmt.Errorf("missing upload: %w", domain.ErrInvalidInput)
	}
	if s.settings.MaxUploadBytes > 0 && int64(len(upload.Content)) > s.settings.MaxUploadBytes {
		return nil, fmt.Errorf("upload is %d bytes, limit is %d: %w",
			len(upload.Content), s.settings.MaxUploadBytes, domain.ErrSizeLimitExceeded)
	}

	format := extractors.FormatForUpload(upload)
	extractor, err := s.registry.ForFormat(format)
	if err != nil {
		return nil, err
	}

	docType := opts.DocumentType
	if docType == "" {
		docType = domain.DocTypeOther
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        uuid.NewString(),
		Title:     upload.Filename,
		Type:      docType,
		State:     domain.StateQueued,
		ByteSize:  int64(len(upload.Content)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.metrics.DocumentsSubmittedTotal.Inc()
	s.metrics.DocumentsInFlight.Inc()

	// The pipeline outlives the submission request, so it runs on its
	// own cancellable context.
	runCtx, cancel := context.WithCancel(context.Background())
	r := &run{cancel: cancel}
	s.mu.Lock()
	s.running[doc.ID] = r
	s.mu.Unlock()

	logger.Info("document %s submitted (%s, %d bytes)", doc.ID, format, doc.ByteSize)
	go s.process(runCtx, doc.ID, upload, opts, extractor, r)

	submitted := *doc
	return &submitted, nil
}

// process runs the pipeline for one document.
func (s *AnalysisService) process(ctx context.Context, docID string, upload *domain.RawUpload, opts domain.SubmitOptions, extractor driven.Extractor, r *run) {
	defer func() {
		s.metrics.DocumentsInFlight.Dec()
		s.mu.Lock()
		delete(s.running, docID)
		s.mu.Unlock()
	}()

	extraction, err := s.extract(ctx, docID, upload, extractor)
	if err != nil {
		s.fail(docID, err)
		return
	}

	clauses, err := s.segment(ctx, docID, extraction, opts)
	if err != nil {
		s.fail(docID, err)
		return
	}

	if err := s.store.UpdateDocumentState(ctx, docID, domain.StateAnalyzing, ""); err != nil {
		s.fail(docID, err)
		return
	}

	doc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		s.fail(docID, err)
		return
	}

	start := time.Now()
	s.analyzeClauses(ctx, doc, clauses, opts, r)
	if ctx.Err() != nil {
		// Cancel already moved the document to failed.
		s.metrics.DocumentsCompletedTotal.WithLabelValues(string(domain.StateFailed)).Inc()
		logger.Info("document %s cancelled during analysis", docID)
		return
	}
	s.metrics.ObserveStage("analyzing", start)

	if err := s.assemble(ctx, doc); err != nil {
		s.fail(docID, err)
		return
	}

	s.metrics.DocumentsCompletedTotal.WithLabelValues(string(domain.StateCompleted)).Inc()
	logger.Info("document %s completed", docID)
}

// extract runs the extraction stage and records title and page count.
func (s *AnalysisService) extract(ctx context.Context, docID string, upload *domain.RawUpload, extractor driven.Extractor) (*domain.Extraction, error) {
	if err := s.store.UpdateDocumentState(ctx, docID, domain.StateExtracting, ""); err != nil {
		return nil, err
	}

	start := time.Now()
	extraction, err := extractor.Extract(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if strings.TrimSpace(extraction.Text) == "" {
		return nil, domain.ErrNoExtractableContent
	}
	s.metrics.ObserveStage("extracting", start)

	doc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if extraction.Title != "" {
		doc.Title = extraction.Title
	}
	doc.PageCount = extraction.PageCount()
	doc.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Debug("document %s extracted: %d pages, %d chars", docID, doc.PageCount, len(extraction.Text))
	return extraction, nil
}

// segment runs the segmentation stage and fixes the clause set.
func (s *AnalysisService) segment(ctx context.Context, docID string, extraction *domain.Extraction, _ domain.SubmitOptions) ([]domain.Clause, error) {
	if err := s.store.UpdateDocumentState(ctx, docID, domain.StateSegmenting, ""); err != nil {
		return nil, err
	}

	start := time.Now()
	drafts, err := s.segmenter.Segment(extraction.Text)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	clauses := make([]domain.Clause, 0, len(drafts))
	for _, d := range drafts {
		clauses = append(clauses, domain.Clause{
			ID:             uuid.NewString(),
			DocumentID:     docID,
			SequenceNumber: d.SequenceNumber,
			Title:          d.Title,
			Text:           d.Text,
			Type:           d.Type,
			StartOffset:    d.StartOffset,
			EndOffset:      d.EndOffset,
			PageNumber:     extraction.PageForOffset(d.StartOffset),
			State:          domain.ClauseStatePending,
		})
	}
	if err := s.store.SaveClauses(ctx, clauses); err != nil {
		return nil, fmt.Errorf("save clauses: %w", err)
	}

	doc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	doc.TotalClauses = len(clauses)
	doc.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	s.metrics.ObserveStage("segmenting", start)

	logger.Debug("document %s segmented into %d clauses", docID, len(clauses))
	return clauses, nil
}

// analyzeClauses runs per-clause analysis under the configured
// concurrency bound. Clause-local failures degrade the clause; the
// document continues.
func (s *AnalysisService) analyzeClauses(ctx context.Context, doc *domain.Document, clauses []domain.Clause, opts domain.SubmitOptions, r *run) {
	preference := parsePreference(opts.ProviderPreference)
	firstChoice := s.firstChoice(preference)

	sem := make(chan struct{}, s.settings.ClauseConcurrency)
	var wg sync.WaitGroup
	for i := range clauses {
		clause := clauses[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			start := time.Now()
			s.analyzeClause(ctx, doc, &clause, preference, firstChoice)
			r.recordClause(time.Since(start))
		}()
	}
	wg.Wait()
}

// analyzeClause runs one clause through judge, persist and index. The
// clause is analyzed only after both the record and the index entry
// are durably written.
func (s *AnalysisService) analyzeClause(ctx context.Context, doc *domain.Document, clause *domain.Clause, preference []domain.AIProvider, firstChoice domain.AIProvider) {
	req := driven.JudgeRequest{
		ClauseText:       clause.Text,
		ClauseType:       clause.Type,
		DocumentType:     doc.Type,
		SequenceNumber:   clause.SequenceNumber,
		KnowledgeContext: s.knowledgeContext(ctx, clause.Type, doc.Type),
	}

	judgment, provider, err := s.judges.Judge(ctx, req, preference)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled mid-call; the clause stays pending.
			return
		}
		logger.Warn("clause %s: analysis failed: %v", clause.ID, err)
		s.metrics.RecordJudgment("none", "failed")
		s.degradeClause(ctx, clause)
		return
	}
	if firstChoice != "" && provider != firstChoice {
		s.metrics.ProviderFalloversTotal.Inc()
	}
	s.metrics.RecordJudgment(provider.String(), "ok")

	applyJudgment(clause, judgment)
	clause.State = domain.ClauseStatePendingEmbedding
	clause.AnalyzedAt = time.Now().UTC()
	if err := s.store.UpdateClause(ctx, clause); err != nil {
		logger.Error(err, "clause %s: persist judgment", clause.ID)
		return
	}

	if s.embedder == nil || s.index == nil {
		// Indexing disabled; the clause completes without a vector.
		s.finishClause(ctx, clause)
		return
	}

	if err := s.indexClause(ctx, clause, clause.Text); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("clause %s: %v", clause.ID, err)
		s.metrics.EmbeddingWritesTotal.WithLabelValues("failed").Inc()
		s.degradeClause(ctx, clause)
		return
	}
	s.metrics.EmbeddingWritesTotal.WithLabelValues("ok").Inc()
	s.finishClause(ctx, clause)
}

// finishClause marks a clause analyzed.
func (s *AnalysisService) finishClause(ctx context.Context, clause *domain.Clause) {
	clause.State = domain.ClauseStateAnalyzed
	if err := s.store.UpdateClause(ctx, clause); err != nil {
		logger.Error(err, "clause %s: persist analyzed state", clause.ID)
	}
}

// degradeClause records the placeholder judgment and marks the clause
// failed. The document continues with a degraded clause.
func (s *AnalysisService) degradeClause(ctx context.Context, clause *domain.Clause) {
	placeholder := domain.PlaceholderJudgment()
	applyJudgment(clause, &placeholder)
	clause.State = domain.ClauseStateFailed
	clause.AnalyzedAt = time.Now().UTC()
	s.metrics.DegradedClausesTotal.Inc()
	if err := s.store.UpdateClause(ctx, clause); err != nil {
		logger.Error(err, "clause %s: persist degraded state", clause.ID)
	}
}

// indexClause embeds the clause text and writes the vector, retrying
// with exponential backoff up to the configured attempt count.
func (s *AnalysisService) indexClause(ctx context.Context, clause *domain.Clause, text string) error {
	backoff := 100 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < s.settings.EmbeddingRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			lastErr = err
			continue
		}
		if err := s.index.Add(ctx, clause.ID, clause.DocumentID, clause.SequenceNumber, vector); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("embedding write after %d attempts: %w: %w",
		s.settings.EmbeddingRetries, domain.ErrEmbeddingWriteFailure, lastErr)
}

// assemble computes and freezes the summary and navigation, then
// completes the document.
func (s *AnalysisService) assemble(ctx context.Context, doc *domain.Document) error {
	if err := s.store.UpdateDocumentState(ctx, doc.ID, domain.StateAssembling, ""); err != nil {
		return err
	}

	start := time.Now()
	clauses, err := s.store.GetClauses(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("load clauses: %w", err)
	}

	s.relateClauses(ctx, clauses)

	summary := BuildSummary(doc.ID, doc.Type, clauses)
	nav := BuildNavigation(clauses)
	if err := s.store.SaveResult(ctx, &summary, &nav); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	s.metrics.ObserveStage("assembling", start)

	return s.store.UpdateDocumentState(ctx, doc.ID, domain.StateCompleted, "")
}

// relateClauses links each analyzed clause to its nearest neighbours
// in the index, so readers can jump between clauses covering the same
// ground. Runs after all indexing has finished, so the result does not
// depend on clause completion order. Linking is advisory; failures are
// logged and skipped.
func (s *AnalysisService) relateClauses(ctx context.Context, clauses []domain.Clause) {
	if s.index == nil {
		return
	}

	for i := range clauses {
		clause := &clauses[i]
		if clause.State != domain.ClauseStateAnalyzed {
			continue
		}

		hits, err := s.index.Related(ctx, clause.ID, relatedTopK)
		if err != nil {
			logger.Debug("clause %s: related lookup failed: %v", clause.ID, err)
			continue
		}

		var related []string
		for _, hit := range hits {
			if hit.Similarity < relatedMinSimilarity {
				continue
			}
			related = append(related, hit.ClauseID)
		}
		if len(related) == 0 {
			continue
		}

		clause.RelatedClauseIDs = related
		if err := s.store.UpdateClause(ctx, clause); err != nil {
			logger.Warn("clause %s: persist related clauses: %v", clause.ID, err)
		}
	}
}

// fail moves the document to the failed state. The write uses a fresh
// context because the pipeline's own context may already be cancelled.
func (s *AnalysisService) fail(docID string, cause error) {
	logger.Error(cause, "document %s failed", docID)

	ctx, cancel := context.WithTimeout(context.Background(), failTimeout)
	defer cancel()
	err := s.store.UpdateDocumentState(ctx, docID, domain.StateFailed, cause.Error())
	if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		logger.Error(err, "document %s: persist failed state", docID)
	}
	s.metrics.DocumentsCompletedTotal.WithLabelValues(string(domain.StateFailed)).Inc()
}

// knowledgeContext loads reference material for the clause and
// document type. Knowledge is advisory; lookup failures degrade to an
// empty context.
func (s *AnalysisService) knowledgeContext(ctx context.Context, clauseType string, docType domain.DocumentType) []domain.KnowledgeEntry {
	if s.knowledge == nil {
		return nil
	}
	entries, err := s.knowledge.EntriesForCategories(ctx, []string{clauseType, string(docType)})
	if err != nil {
		logger.Debug("knowledge lookup failed: %v", err)
		return nil
	}
	if len(entries) > maxKnowledgeEntries {
		entries = entries[:maxKnowledgeEntries]
	}
	return entries
}

// Status reports a document's state, progress and ETA.
func (s *AnalysisService) Status(ctx context.Context, documentID string) (*domain.ProcessingStatus, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	status := &domain.ProcessingStatus{
		DocumentID:    doc.ID,
		State:         doc.State,
		FailureReason: doc.FailureReason,
	}

	switch doc.State {
	case domain.StateCompleted:
		status.Progress = 1
	case domain.StateAnalyzing:
		if doc.TotalClauses == 0 {
			break
		}
		clauses, err := s.store.GetClauses(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("load clauses: %w", err)
		}
		terminal := 0
		for _, c := range clauses {
			if c.State.TerminalOutcome() {
				terminal++
			}
		}
		status.Progress = float64(terminal) / float64(doc.TotalClauses)

		s.mu.Lock()
		r := s.running[doc.ID]
		s.mu.Unlock()
		if r != nil {
			if mean := r.meanClauseSeconds(); mean > 0 {
				remaining := float64(doc.TotalClauses - terminal)
				status.ETA = time.Duration(mean * remaining / float64(s.settings.ClauseConcurrency) * float64(time.Second))
			}
		}
	}
	return status, nil
}

// Result returns the frozen artefact for a completed document.
func (s *AnalysisService) Result(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.State != domain.StateCompleted {
		return nil, fmt.Errorf("document %s is %s: %w", doc.ID, doc.State, domain.ErrDocumentNotCompleted)
	}

	clauses, err := s.store.GetClauses(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("load clauses: %w", err)
	}
	summary, err := s.store.GetSummary(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("load summary: %w", err)
	}
	nav, err := s.store.GetNavigation(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("load navigation: %w", err)
	}

	return &domain.AnalysisResult{
		Document:   *doc,
		Timeline:   BuildTimeline(clauses),
		Summary:    *summary,
		Navigation: *nav,
	}, nil
}

// Clauses returns a document's clauses in sequence order.
func (s *AnalysisService) Clauses(ctx context.Context, documentID string) ([]domain.Clause, error) {
	if _, err := s.store.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.store.GetClauses(ctx, documentID)
}

// List returns all known documents, newest first.
func (s *AnalysisService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Cancel stops an in-flight document and moves it to failed.
func (s *AnalysisService) Cancel(ctx context.Context, documentID string) error {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.State.Terminal() {
		return fmt.Errorf("document %s already %s: %w", documentID, doc.State, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	r := s.running[documentID]
	s.mu.Unlock()
	if r != nil {
		r.cancel()
	}

	err = s.store.UpdateDocumentState(ctx, documentID, domain.StateFailed, domain.ErrCancelled.Error())
	if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	logger.Info("document %s cancelled", documentID)
	return nil
}

// Delete removes a document, its clauses and its index vectors.
func (s *AnalysisService) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	r := s.running[documentID]
	s.mu.Unlock()
	if r != nil {
		r.cancel()
	}

	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.DeleteDocument(ctx, documentID); err != nil {
			return fmt.Errorf("delete index vectors: %w", err)
		}
	}
	logger.Info("document %s deleted", documentID)
	return nil
}

// Reconcile repairs clauses interrupted between the judgment write and
// the index write. Only the embedding half is redone; the stored
// judgment is never recomputed.
func (s *AnalysisService) Reconcile(ctx context.Context) error {
	if s.embedder == nil || s.index == nil {
		logger.Debug("reconcile skipped: embedding disabled")
		return nil
	}

	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	repaired := 0
	for _, doc := range docs {
		ids, err := s.store.ClausesInState(ctx, doc.ID, domain.ClauseStatePendingEmbedding)
		if err != nil {
			return fmt.Errorf("document %s: %w", doc.ID, err)
		}
		for _, id := range ids {
			clause, err := s.store.GetClause(ctx, id)
			if err != nil {
				logger.Warn("reconcile: clause %s: %v", id, err)
				continue
			}
			if err := s.indexClause(ctx, clause, clause.Text); err != nil {
				logger.Warn("reconcile: clause %s: %v", id, err)
				continue
			}
			s.finishClause(ctx, clause)
			repaired++
		}
	}
	if repaired > 0 {
		logger.Info("reconciled %d clause embeddings", repaired)
	}
	return nil
}

// applyJudgment copies judgment fields onto the clause record.
func applyJudgment(clause *domain.Clause, j *domain.Judgment) {
	clause.SeverityLevel = domain.ClampSeverity(j.SeverityLevel)
	clause.RiskFactors = j.RiskFactors
	clause.LegalImplications = j.LegalImplications
	clause.PlainLanguageExplanation = j.PlainLanguageExplanation
	clause.ComplianceFlags = j.ComplianceFlags
}

// parsePreference converts raw provider names to the typed preference
// list, dropping unknown names.
func parsePreference(names []string) []domain.AIProvider {
	var preference []domain.AIProvider
	for _, name := range names {
		provider := domain.AIProvider(strings.ToLower(strings.TrimSpace(name)))
		if provider.IsValid() {
			preference = append(preference, provider)
		}
	}
	return preference
}

// firstChoice is the provider expected to serve a clause when nothing
// falls over.
func (s *AnalysisService) firstChoice(preference []domain.AIProvider) domain.AIProvider {
	if len(preference) > 0 {
		return preference[0]
	}
	if available := s.judges.Available(); len(available) > 0 {
		return available[0]
	}
	return ""
}
