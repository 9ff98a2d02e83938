package rest

import (
	"context"
	"errors"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
)

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

var errNotStubbed = errors.New("not stubbed")

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
