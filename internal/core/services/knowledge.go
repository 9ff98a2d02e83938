package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService seeds and lists the built-in legal reference
// corpus. Entries have fixed IDs, so seeding is idempotent.
type KnowledgeService struct {
	store    driven.KnowledgeStore
	embedder driven.EmbeddingService
	index    driven.ClauseIndex
}

// NewKnowledgeService creates the knowledge base manager. Embedder and
// index are optional; without them entries are stored but not
// retrievable through similarity search.
func NewKnowledgeService(store driven.KnowledgeStore, embedder driven.EmbeddingService, index driven.ClauseIndex) *KnowledgeService {
	return &KnowledgeService{store: store, embedder: embedder, index: index}
}

// Seed loads the built-in reference entries into the knowledge store
// and, when embedding is available, into the vector index under the
// reserved knowledge scope.
func (s *KnowledgeService) Seed(ctx context.Context) error {
	entries := builtinKnowledgeEntries()
	if err := s.store.SeedEntries(ctx, entries); err != nil {
		return fmt.Errorf("seed knowledge entries: %w", err)
	}

	if s.embedder == nil || s.index == nil {
		logger.Debug("knowledge base seeded without vectors: embedding disabled")
		return nil
	}

	indexed := 0
	for i, entry := range entries {
		vector, err := s.embedder.Embed(ctx, entry.Title+"\n"+entry.Content)
		if err != nil {
			logger.Warn("knowledge entry %s: embed failed: %v", entry.ID, err)
			continue
		}
		// Corpus position stands in for a sequence number so ties in
		// similarity order deterministically.
		if err := s.index.Add(ctx, entry.ID, KnowledgeDocumentID, i+1, vector); err != nil {
			logger.Warn("knowledge entry %s: index write failed: %v", entry.ID, err)
			continue
		}
		indexed++
	}
	logger.Info("knowledge base seeded: %d entries, %d indexed", len(entries), indexed)
	return nil
}

// List returns all knowledge entries.
func (s *KnowledgeService) List(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	return s.store.ListEntries(ctx)
}

// builtinKnowledgeEntries is the seeded reference corpus consulted
// during clause analysis and RAG answering.
func builtinKnowledgeEntries() []domain.KnowledgeEntry {
	seeded := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.KnowledgeEntry{
		{
			ID:    "kb-security-deposit",
			Title: "Security deposit limits",
			Content: "Many jurisdictions cap residential security deposits at one to two months' rent " +
				"and require the deposit to be returned within a fixed window after the tenancy ends, " +
				"commonly 14 to 30 days, with an itemised list of any deductions.",
			ContentType:  "regulation",
			Jurisdiction: "general",
			Categories:   []string{"rental_agreement", "payment"},
			CreatedAt:    seeded,
		},
		{
			ID:    "kb-late-fees",
			Title: "Late payment fees",
			Content: "Late fees generally must be a reasonable estimate of the actual cost of late payment. " +
				"Fees that operate as penalties, compound daily or exceed a small percentage of the amount due " +
				"are unenforceable in many jurisdictions.",
			ContentType:  "regulation",
			Jurisdiction: "general",
			Categories:   []string{"rental_agreement", "loan_contract", "payment"},
			CreatedAt:    seeded,
		},
		{
			ID:    "kb-usury-limits",
			Title: "Interest rate ceilings",
			Content: "Usury laws cap the interest rate a lender may charge. Rates above the statutory ceiling " +
				"can void the interest obligation entirely and in some jurisdictions expose the lender to damages. " +
				"Annual percentage rates must be disclosed before signing.",
			ContentType:  "statute",
			Jurisdiction: "general",
			Categories:   []string{"loan_contract", "payment"},
			CreatedAt:    seeded,
		},
		{
			ID:    "kb-termination-notice",
			Title: "Termination notice periods",
			Content: "Contracts terminable at will typically still require written notice, commonly 30 to 60 days. " +
				"Clauses allowing one party to terminate without notice while binding the other are a recognised " +
				"marker of an unbalanced agreement.",
			ContentType:  "guidance",
			Jurisdiction: "general",
			Categories:   []string{"rental_agreement", "terms_of_service", "termination"},
			CreatedAt:    seeded,
		},
		{
			ID:    "kb-liability-waivers",
			Title: "Liability waivers and caps",
			Content: "Blanket waivers of liability are narrowly construed and often unenforceable for gross " +
				"negligence, personal injury or statutory rights. Caps limiting liability to fees paid are common " +
				"in service terms but cannot waive non-excludable consumer protections.",
			ContentType:  "guidance",
			Jurisdiction: "general",
			Categories:   []string{"terms_of_service", "liability"},
			CreatedAt:    seeded,
		},
		{
			ID:    "kb-arbitration-clauses",
			Title: "Mandatory arbitration",
			Content: "Mandatory arbitration clauses waive the right to sue in court and often the right to join " +
				"a class action. Enforceability varies; clauses buried in standard terms or imposing distant venues " +
				"and fee-shifting on consumers attract heightened scrutiny.",
			ContentType:  "guidance",
			Jurisdiction: "general",
			Categories:   []string{"terms_of_service", "dispute_resolution"},
			CreatedAt:    seeded,
		},
		{
			ID:    "kb-automatic-renewal",
			Title: "Automatic renewal terms",
			Content: "Automatic renewal clauses must typically be disclosed clearly and conspicuously, with a " +
				"simple cancellation mechanism. Several jurisdictions require advance reminder notices before a " +
				"renewal takes effect, particularly for terms of a year or longer.",
			ContentType:  "statute",
			Jurisdiction: "general",
			Categories:   []string{"terms_of_service", "rental_agreement", "renewal"},
			CreatedAt:    seeded,
		},
	}
}
