package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/config/file"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
)

// executeCommand runs the root command with the given args and returns
// the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flag-backed state so earlier tests cannot leak values.
	analyzeDocType = "other"
	analyzeProviders = nil
	analyzeWait = false
	askDocumentID = ""
	askTopK = 0
	timelineFull = false

	t.Cleanup(func() { SetServices(Services{}) })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "clauseline version dev")
}

func TestAnalyzeCommand_SubmitsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("The tenant shall pay rent monthly."), 0o600))

	var gotUpload *domain.RawUpload
	var gotOpts domain.SubmitOptions
	SetServices(Services{Analysis: &mockAnalysis{
		submitFn: func(_ context.Context, upload *domain.RawUpload, opts domain.SubmitOptions) (*domain.Document, error) {
			gotUpload = upload
			gotOpts = opts
			return &domain.Document{ID: "doc-1", State: domain.StateQueued}, nil
		},
	}})

	output, err := executeCommand(t, "analyze", path,
		"--type", "rental_agreement", "--provider", "openai,ollama")
	require.NoError(t, err)

	assert.Contains(t, output, "Document submitted: doc-1")
	assert.Contains(t, output, "clauseline status doc-1")
	require.NotNil(t, gotUpload)
	assert.Equal(t, "lease.txt", gotUpload.Filename)
	assert.Equal(t, domain.DocTypeRentalAgreement, gotOpts.DocumentType)
	assert.Equal(t, []string{"openai", "ollama"}, gotOpts.ProviderPreference)
}

func TestAnalyzeCommand_ServiceNotConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	_, err := executeCommand(t, "analyze", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis service not configured")
}

func TestStatusCommand_Analyzing(t *testing.T) {
	SetServices(Services{Analysis: &mockAnalysis{
		statusFn: func(_ context.Context, documentID string) (*domain.ProcessingStatus, error) {
			return &domain.ProcessingStatus{
				DocumentID: documentID,
				State:      domain.StateAnalyzing,
				Progress:   0.5,
				ETA:        10 * time.Second,
			}, nil
		},
	}})

	output, err := executeCommand(t, "status", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "analyzing")
	assert.Contains(t, output, "50%")
	assert.Contains(t, output, "10s")
}

func TestStatusCommand_Failed(t *testing.T) {
	SetServices(Services{Analysis: &mockAnalysis{
		statusFn: func(_ context.Context, documentID string) (*domain.ProcessingStatus, error) {
			return &domain.ProcessingStatus{
				DocumentID:    documentID,
				State:         domain.StateFailed,
				FailureReason: "text extraction failed",
			}, nil
		},
	}})

	output, err := executeCommand(t, "status", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "text extraction failed")
}

func TestListCommand(t *testing.T) {
	SetServices(Services{Analysis: &mockAnalysis{
		listFn: func(_ context.Context) ([]domain.Document, error) {
			return []domain.Document{
				{ID: "doc-1", Title: "Lease", Type: domain.DocTypeRentalAgreement, State: domain.StateCompleted},
				{ID: "doc-2", Title: "Loan", Type: domain.DocTypeLoanContract, State: domain.StateAnalyzing},
			}, nil
		},
	}})

	output, err := executeCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "doc-1")
	assert.Contains(t, output, "Lease")
	assert.Contains(t, output, "analyzing")
}

func TestListCommand_Empty(t *testing.T) {
	SetServices(Services{Analysis: &mockAnalysis{
		listFn: func(_ context.Context) ([]domain.Document, error) { return nil, nil },
	}})

	output, err := executeCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No documents submitted yet")
}

func TestCancelCommand(t *testing.T) {
	var cancelled string
	SetServices(Services{Analysis: &mockAnalysis{
		cancelFn: func(_ context.Context, documentID string) error {
			cancelled = documentID
			return nil
		},
	}})

	output, err := executeCommand(t, "cancel", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", cancelled)
	assert.Contains(t, output, "Cancelled document doc-1")
}

func TestDeleteCommand(t *testing.T) {
	var deleted string
	SetServices(Services{Analysis: &mockAnalysis{
		deleteFn: func(_ context.Context, documentID string) error {
			deleted = documentID
			return nil
		},
	}})

	output, err := executeCommand(t, "delete", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", deleted)
	assert.Contains(t, output, "Deleted document doc-1")
}

func TestTimelineCommand(t *testing.T) {
	SetServices(Services{Analysis: &mockAnalysis{
		resultFn: func(_ context.Context, documentID string) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{
				Document: domain.Document{ID: documentID, Title: "Lease Agreement", Type: domain.DocTypeRentalAgreement},
				Timeline: []domain.TimelineItem{
					{ClauseID: "c-1", SequenceNumber: 1, Title: "Clause 1", Type: "payment", SeverityLevel: 2},
					{ClauseID: "c-2", SequenceNumber: 2, Title: "Clause 2", Type: "liability", SeverityLevel: 5, Degraded: false},
				},
				Summary: domain.DocumentSummary{
					DocumentID:       documentID,
					LowRiskClauses:   1,
					HighRiskClauses:  1,
					CriticalIssues:   []string{"Unlimited liability"},
					Recommendations:  []string{"Review the 1 high-risk clause(s) with a legal professional before signing"},
					ComplianceScore:  60,
					OverallSentiment: domain.SentimentHigh,
				},
				Navigation: domain.TimelineNavigation{
					TotalSteps:          2,
					CriticalCheckpoints: []int{2},
					RecommendedFlow:     []int{1, 2},
				},
			}, nil
		},
	}})

	output, err := executeCommand(t, "timeline", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "Lease Agreement")
	assert.Contains(t, output, "high_risk")
	assert.Contains(t, output, "60/100")
	assert.Contains(t, output, "Unlimited liability")
	assert.Contains(t, output, "Clause 2")
	assert.Contains(t, output, "Critical checkpoints: clauses 2")
	assert.Contains(t, output, "Recommended reading order: 1, 2")
}

func TestTimelineCommand_NotCompleted(t *testing.T) {
	SetServices(Services{Analysis: &mockAnalysis{
		resultFn: func(_ context.Context, _ string) (*domain.AnalysisResult, error) {
			return nil, domain.ErrDocumentNotCompleted
		},
	}})

	_, err := executeCommand(t, "timeline", "doc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not completed")
}

func TestAskCommand(t *testing.T) {
	var gotQuestion string
	var gotOpts driving.AskOptions
	SetServices(Services{RAG: &mockRAG{
		askFn: func(_ context.Context, question string, opts driving.AskOptions) (*domain.RAGAnswer, error) {
			gotQuestion = question
			gotOpts = opts
			return &domain.RAGAnswer{
				Question:        question,
				Answer:          "The deposit is capped at two months' rent.",
				ConfidenceScore: 0.85,
				Sources: []domain.RAGSource{
					{DocumentID: "doc-1", ClauseID: "c-3", Similarity: 0.9},
				},
			}, nil
		},
	}})

	output, err := executeCommand(t, "ask", "what", "about", "the", "deposit",
		"--document", "doc-1", "--top-k", "3")
	require.NoError(t, err)

	assert.Equal(t, "what about the deposit", gotQuestion)
	assert.Equal(t, "doc-1", gotOpts.DocumentID)
	assert.Equal(t, 3, gotOpts.TopK)
	assert.Contains(t, output, "capped at two months' rent")
	assert.Contains(t, output, "Confidence: 85%")
	assert.Contains(t, output, "doc-1 / c-3")
}

func TestInitKBCommand(t *testing.T) {
	knowledge := &mockKnowledge{entries: []domain.KnowledgeEntry{{ID: "kb-1"}, {ID: "kb-2"}}}
	SetServices(Services{Knowledge: knowledge})

	output, err := executeCommand(t, "init-kb")
	require.NoError(t, err)
	assert.Equal(t, 1, knowledge.seeded)
	assert.Contains(t, output, "ready with 2 entries")
}

func TestKnowledgeListCommand(t *testing.T) {
	SetServices(Services{Knowledge: &mockKnowledge{
		entries: []domain.KnowledgeEntry{
			{ID: "kb-late-fees", Title: "Late Fee Limits", Categories: []string{"payment"}},
		},
	}})

	output, err := executeCommand(t, "knowledge", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "kb-late-fees")
	assert.Contains(t, output, "Late Fee Limits")
	assert.Contains(t, output, "payment")
}

func TestConfigShowCommand_MasksSecrets(t *testing.T) {
	SetServices(Services{Config: newMockConfigStore(map[string]any{
		configfile.KeyJudgeProvider: "openai",
		configfile.KeyJudgeAPIKey:   "sk-verysecret1234",
	})})

	output, err := executeCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "judge.provider")
	assert.Contains(t, output, "openai")
	assert.Contains(t, output, "****1234")
	assert.NotContains(t, output, "sk-verysecret1234")
}

func TestConfigSetCommand(t *testing.T) {
	store := newMockConfigStore(nil)
	SetServices(Services{Config: store})

	_, err := executeCommand(t, "config", "set", "analysis.clause_concurrency", "8")
	require.NoError(t, err)

	value, ok := store.Get(configfile.KeyAnalysisConcurrency)
	require.True(t, ok)
	assert.Equal(t, int64(8), value)
}
