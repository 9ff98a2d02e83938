package driven

import (
	"context"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
)

// JudgeChain resolves an ordered provider preference into judgments.
// It owns the fallover policy: for each clause it tries the preferred
// provider and at most one fallback before reporting failure.
type JudgeChain interface {
	// Judge analyses a clause using the given provider preference.
	// An empty preference means the configured default order.
	// Returns the judgment and the provider that produced it, or
	// domain.ErrAnalysisProviderFailure when the chain is exhausted.
	Judge(ctx context.Context, req JudgeRequest, preference []domain.AIProvider) (*domain.Judgment, domain.AIProvider, error)

	// Generate produces a free-text completion from the first healthy
	// provider in the default order.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Available returns the providers currently configured, in default
	// preference order.
	Available() []domain.AIProvider
}
