package cli

import (
	"context"
	"errors"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
)

var errNotStubbed = errors.New("not stubbed")

// mockAnalysis stubs the analysis service with function fields.
type mockAnalysis struct {
	submitFn  func(ctx context.Context, upload *domain.RawUpload, opts domain.SubmitOptions) (*domain.Document, error)
	statusFn  func(ctx context.Context, documentID string) (*domain.ProcessingStatus, error)
	resultFn  func(ctx context.Context, documentID string) (*domain.AnalysisResult, error)
	clausesFn func(ctx context.Context, documentID string) ([]domain.Clause, error)
	listFn    func(ctx context.Context) ([]domain.Document, error)
	cancelFn  func(ctx context.Context, documentID string) error
	deleteFn  func(ctx context.Context, documentID string) error
}

var _ driving.AnalysisService = (*mockAnalysis)(nil)

func (m *mockAnalysis) Submit(ctx context.Context, upload *domain.RawUpload, opts domain.SubmitOptions) (*domain.Document, error) {
	if m.submitFn == nil {
		return nil, errNotStubbed
	}
	return m.submitFn(ctx, upload, opts)
}

func (m *mockAnalysis) Status(ctx context.Context, documentID string) (*domain.ProcessingStatus, error) {
	if m.statusFn == nil {
		return nil, errNotStubbed
	}
	return m.statusFn(ctx, documentID)
}

func (m *mockAnalysis) Result(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	if m.resultFn == nil {
		return nil, errNotStubbed
	}
	return m.resultFn(ctx, documentID)
}

func (m *mockAnalysis) Clauses(ctx context.Context, documentID string) ([]domain.Clause, error) {
	if m.clausesFn == nil {
		return nil, errNotStubbed
	}
	return m.clausesFn(ctx, documentID)
}

func (m *mockAnalysis) List(ctx context.Context) ([]domain.Document, error) {
	if m.listFn == nil {
		return nil, errNotStubbed
	}
	return m.listFn(ctx)
}

func (m *mockAnalysis) Cancel(ctx context.Context, documentID string) error {
	if m.cancelFn == nil {
		return errNotStubbed
	}
	return m.cancelFn(ctx, documentID)
}

func (m *mockAnalysis) Delete(ctx context.Context, documentID string) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, documentID)
}

// mockRAG stubs the RAG service.
type mockRAG struct {
	askFn     func(ctx context.Context, question string, opts driving.AskOptions) (*domain.RAGAnswer, error)
	explainFn func(ctx context.Context, documentID, clauseID string) (*domain.RAGAnswer, error)
}

var _ driving.RAGService = (*mockRAG)(nil)

func (m *mockRAG) Ask(ctx context.Context, question string, opts driving.AskOptions) (*domain.RAGAnswer, error) {
	if m.askFn == nil {
		return nil, errNotStubbed
	}
	return m.askFn(ctx, question, opts)
}

func (m *mockRAG) Explain(ctx context.Context, documentID, clauseID string) (*domain.RAGAnswer, error) {
	if m.explainFn == nil {
		return nil, errNotStubbed
	}
	return m.explainFn(ctx, documentID, clauseID)
}

// mockKnowledge stubs the knowledge service.
type mockKnowledge struct {
	seedErr error
	entries []domain.KnowledgeEntry
	seeded  int
}

var _ driving.KnowledgeService = (*mockKnowledge)(nil)

func (m *mockKnowledge) Seed(_ context.Context) error {
	m.seeded++
	return m.seedErr
}

func (m *mockKnowledge) List(_ context.Context) ([]domain.KnowledgeEntry, error) {
	return m.entries, nil
}

// mockConfigStore is an in-memory config store.
type mockConfigStore struct {
	values map[string]any
	path   string
}

var _ driven.ConfigStore = (*mockConfigStore)(nil)

func newMockConfigStore(values map[string]any) *mockConfigStore {
	if values == nil {
		values = make(map[string]any)
	}
	return &mockConfigStore{values: values, path: "/tmp/config.toml"}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	if f, ok := m.values[key].(float64); ok {
		return f
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if b, ok := m.values[key].(bool); ok {
		return b
	}
	return false
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if s, ok := m.values[key].([]string); ok {
		return s
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return m.path }
