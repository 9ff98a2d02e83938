package driven

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// JudgeProvider performs structured clause analysis with a language model.
// This is an optional service - when no provider is available, clauses
// carry placeholder judgments and the document still completes.
//
// Implementations may include:
//   - OpenAI (GPT-4 class models)
//   - Anthropic (Claude)
//   - Ollama (local models)
type JudgeProvider interface {
	// Judge analyses a single clause and returns a schema-validated
	// judgment. A response that cannot be decoded into the judgment
	// schema is an error; callers never receive partial judgments.
	Judge(ctx context.Context, req JudgeRequest) (*domain.Judgment, error)

	// Generate produces a free-text completion. Used for RAG answer
	// synthesis, where the output is prose rather than a judgment.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Provider returns which AI provider backs this judge.
	Provider() domain.AIProvider

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// JudgeRequest carries everything a provider needs to analyse one clause.
type JudgeRequest struct {
	// ClauseText is the clause being analysed.
	ClauseText string

	// ClauseType classifies the clause (e.g. "termination", "payment").
	ClauseType string

	// DocumentType is the parent document's declared type.
	DocumentType domain.DocumentType

	// SequenceNumber is the clause's position in the document.
	SequenceNumber int

	// KnowledgeContext is reference material relevant to the clause,
	// already filtered by category. May be empty.
	KnowledgeContext []domain.KnowledgeEntry
}

// GenerateOptions configures free-text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
