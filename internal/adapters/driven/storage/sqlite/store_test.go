package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// createTestDocument saves a queued document and returns it.
func createTestDocument(t *testing.T, store *Store) *domain.Document {
	t.Helper()
	doc := &domain.Document{
		ID:       uuid.NewString(),
		Title:    "Residential Lease",
		Type:     domain.DocTypeRentalAgreement,
		State:    domain.StateQueued,
		ByteSize: 2048,
	}
	require.NoError(t, store.DocumentStore().SaveDocument(context.Background(), doc))
	return doc
}

// createTestClauses saves n pending clauses for the document.
func createTestClauses(t *testing.T, store *Store, docID string, n int) []domain.Clause {
	t.Helper()
	clauses := make([]domain.Clause, n)
	for i := range clauses {
		clauses[i] = domain.Clause{
			ID:             uuid.NewString(),
			DocumentID:     docID,
			SequenceNumber: i + 1,
			Title:          "Clause",
			Text:           "The tenant shall pay rent on the first of each month.",
			Type:           "payment",
			State:          domain.ClauseStatePending,
		}
	}
	require.NoError(t, store.DocumentStore().SaveClauses(context.Background(), clauses))
	return clauses
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "clauseline.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not rerun migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := createTestDocument(t, store)

	got, err := store.DocumentStore().GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "Residential Lease", got.Title)
	assert.Equal(t, domain.DocTypeRentalAgreement, got.Type)
	assert.Equal(t, domain.StateQueued, got.State)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.DocumentStore().GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UpdateDocumentState(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)

	require.NoError(t, docs.UpdateDocumentState(ctx, doc.ID, domain.StateExtracting, ""))
	require.NoError(t, docs.UpdateDocumentState(ctx, doc.ID, domain.StateSegmenting, ""))

	got, err := docs.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSegmenting, got.State)
}

func TestDocumentStore_UpdateDocumentState_InvalidTransition(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)

	// Skipping extracting is not allowed.
	err := docs.UpdateDocumentState(ctx, doc.ID, domain.StateAnalyzing, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Failure is reachable from any non-terminal state.
	require.NoError(t, docs.UpdateDocumentState(ctx, doc.ID, domain.StateFailed, "pdftotext missing"))

	got, err := docs.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateFailed, got.State)
	assert.Equal(t, "pdftotext missing", got.FailureReason)

	// Terminal states are frozen.
	err = docs.UpdateDocumentState(ctx, doc.ID, domain.StateExtracting, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_UpdateDocumentState_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DocumentStore().UpdateDocumentState(context.Background(), "missing", domain.StateExtracting, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListDocuments_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	older := &domain.Document{
		ID:        uuid.NewString(),
		Title:     "Older",
		Type:      domain.DocTypeOther,
		State:     domain.StateQueued,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, docs.SaveDocument(ctx, older))
	newer := createTestDocument(t, store)

	list, err := docs.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestDocumentStore_Clauses(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)
	clauses := createTestClauses(t, store, doc.ID, 3)

	got, err := docs.GetClauses(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, clause := range got {
		assert.Equal(t, i+1, clause.SequenceNumber)
		assert.Equal(t, domain.ClauseStatePending, clause.State)
		assert.NotNil(t, clause.RiskFactors)
	}

	single, err := docs.GetClause(ctx, clauses[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, single.SequenceNumber)

	_, err = docs.GetClause(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UpdateClause(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)
	clauses := createTestClauses(t, store, doc.ID, 1)

	clause := clauses[0]
	clause.State = domain.ClauseStateAnalyzed
	clause.SeverityLevel = 4
	clause.RiskFactors = []string{"unlimited liability"}
	clause.PlainLanguageExplanation = "you cover all losses"
	clause.AnalyzedAt = time.Now().UTC()
	require.NoError(t, docs.UpdateClause(ctx, &clause))

	got, err := docs.GetClause(ctx, clause.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClauseStateAnalyzed, got.State)
	assert.Equal(t, 4, got.SeverityLevel)
	assert.Equal(t, []string{"unlimited liability"}, got.RiskFactors)
	assert.False(t, got.AnalyzedAt.IsZero())
}

func TestDocumentStore_UpdateClause_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DocumentStore().UpdateClause(context.Background(), &domain.Clause{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ClausesInState(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)
	clauses := createTestClauses(t, store, doc.ID, 3)

	stuck := clauses[1]
	stuck.State = domain.ClauseStatePendingEmbedding
	require.NoError(t, docs.UpdateClause(ctx, &stuck))

	ids, err := docs.ClausesInState(ctx, doc.ID, domain.ClauseStatePendingEmbedding)
	require.NoError(t, err)
	assert.Equal(t, []string{stuck.ID}, ids)

	pending, err := docs.ClausesInState(ctx, doc.ID, domain.ClauseStatePending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestDocumentStore_SaveAndGetResult(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)

	summary := &domain.DocumentSummary{
		DocumentID:       doc.ID,
		LowRiskClauses:   2,
		HighRiskClauses:  1,
		CriticalIssues:   []string{"unlimited liability"},
		Recommendations:  []string{"negotiate a cap"},
		ComplianceScore:  60,
		OverallSentiment: domain.SentimentModerate,
	}
	nav := &domain.TimelineNavigation{
		TotalSteps:          3,
		CriticalCheckpoints: []int{3},
		RecommendedFlow:     []int{1, 3},
	}
	require.NoError(t, docs.SaveResult(ctx, summary, nav))

	gotSummary, err := docs.GetSummary(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, gotSummary)

	gotNav, err := docs.GetNavigation(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, nav, gotNav)
}

func TestDocumentStore_DeleteCascades(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docs := store.DocumentStore()

	doc := createTestDocument(t, store)
	createTestClauses(t, store, doc.ID, 2)
	require.NoError(t, docs.SaveResult(ctx, &domain.DocumentSummary{DocumentID: doc.ID}, &domain.TimelineNavigation{TotalSteps: 2}))

	require.NoError(t, docs.DeleteDocument(ctx, doc.ID))

	_, err := docs.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	clauses, err := docs.GetClauses(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, clauses)

	_, err = docs.GetSummary(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKnowledgeStore_SeedIdempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	kb := store.KnowledgeStore()

	entries := []domain.KnowledgeEntry{
		{ID: "kb-deposit-caps", Title: "Deposit caps", Content: "Deposits are commonly capped.", Categories: []string{"rental_agreement", "security_deposit"}},
		{ID: "kb-late-fees", Title: "Late fees", Content: "Late fees must be reasonable.", Categories: []string{"rental_agreement", "payment"}},
	}
	require.NoError(t, kb.SeedEntries(ctx, entries))
	require.NoError(t, kb.SeedEntries(ctx, entries))

	all, err := kb.ListEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestKnowledgeStore_EntriesForCategories(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	kb := store.KnowledgeStore()

	require.NoError(t, kb.SeedEntries(ctx, []domain.KnowledgeEntry{
		{ID: "kb-1", Title: "Deposits", Content: "x", Categories: []string{"security_deposit"}},
		{ID: "kb-2", Title: "Interest", Content: "x", Categories: []string{"loan_contract", "payment"}},
		{ID: "kb-3", Title: "Privacy", Content: "x", Categories: []string{"terms_of_service"}},
	}))

	matched, err := kb.EntriesForCategories(ctx, []string{"payment", "security_deposit"})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "kb-1", matched[0].ID)
	assert.Equal(t, "kb-2", matched[1].ID)

	none, err := kb.EntriesForCategories(ctx, []string{"maritime_law"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
