package ai

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure Chain implements the interface.
var _ driven.JudgeChain = (*Chain)(nil)

// ChainEntry pairs a judge provider with its throttle setting.
type ChainEntry struct {
	Judge driven.JudgeProvider

	// RequestsPerMinute throttles calls to this provider. Zero means
	// no throttle.
	RequestsPerMinute int
}

// chainMember is a provider admitted to the chain.
type chainMember struct {
	judge   driven.JudgeProvider
	limiter *rate.Limiter
}

// Chain sequences judge providers in a configured preference order.
// For each clause it tries the preferred provider and at most one
// fallback; a second failure degrades the clause rather than walking
// the whole chain and multiplying latency.
type Chain struct {
	members map[domain.AIProvider]*chainMember
	order   []domain.AIProvider
}

// NewChain creates a judge chain from the given entries. Entry order
// is the default provider preference. Nil judges are skipped.
func NewChain(entries []ChainEntry) *Chain {
	c := &Chain{
		members: make(map[domain.AIProvider]*chainMember),
	}
	for _, entry := range entries {
		if entry.Judge == nil {
			continue
		}
		provider := entry.Judge.Provider()
		if _, exists := c.members[provider]; exists {
			continue
		}

		var limiter *rate.Limiter
		if entry.RequestsPerMinute > 0 {
			limiter = rate.NewLimiter(rate.Limit(float64(entry.RequestsPerMinute)/60.0), 1)
		}

		c.members[provider] = &chainMember{judge: entry.Judge, limiter: limiter}
		c.order = append(c.order, provider)
	}
	return c
}

// Judge analyses a clause using the given provider preference. An empty
// preference means the configured default order.
func (c *Chain) Judge(ctx context.Context, req driven.JudgeRequest, preference []domain.AIProvider) (*domain.Judgment, domain.AIProvider, error) {
	attempts := c.resolve(preference)
	if len(attempts) == 0 {
		return nil, "", domain.ErrJudgeUnavailable
	}

	// Preferred provider plus at most one fallback.
	if len(attempts) > 2 {
		attempts = attempts[:2]
	}

	var lastErr error
	for _, provider := range attempts {
		member := c.members[provider]
		if err := member.wait(ctx); err != nil {
			return nil, "", err
		}

		judgment, err := member.judge.Judge(ctx, req)
		if err == nil {
			return judgment, provider, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		lastErr = fmt.Errorf("%s: %w", provider, err)
	}

	return nil, "", fmt.Errorf("%w: %w", domain.ErrAnalysisProviderFailure, lastErr)
}

// Generate produces a free-text completion from the first provider in
// the default order that succeeds.
func (c *Chain) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if len(c.order) == 0 {
		return "", domain.ErrJudgeUnavailable
	}

	var lastErr error
	for _, provider := range c.order {
		member := c.members[provider]
		if err := member.wait(ctx); err != nil {
			return "", err
		}

		content, err := member.judge.Generate(ctx, prompt, opts)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = fmt.Errorf("%s: %w", provider, err)
	}

	return "", fmt.Errorf("%w: %w", domain.ErrAnalysisProviderFailure, lastErr)
}

// Available returns the configured providers in default preference order.
func (c *Chain) Available() []domain.AIProvider {
	out := make([]domain.AIProvider, len(c.order))
	copy(out, c.order)
	return out
}

// Close releases all providers in the chain.
func (c *Chain) Close() error {
	var firstErr error
	for _, provider := range c.order {
		if err := c.members[provider].judge.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// resolve turns a preference into the list of configured providers to
// try, keeping preference order and dropping unknown providers. Default
// order providers not named in the preference are appended as fallbacks.
func (c *Chain) resolve(preference []domain.AIProvider) []domain.AIProvider {
	if len(preference) == 0 {
		return c.order
	}

	seen := make(map[domain.AIProvider]bool, len(c.order))
	var attempts []domain.AIProvider
	for _, provider := range preference {
		if _, ok := c.members[provider]; ok && !seen[provider] {
			attempts = append(attempts, provider)
			seen[provider] = true
		}
	}
	for _, provider := range c.order {
		if !seen[provider] {
			attempts = append(attempts, provider)
			seen[provider] = true
		}
	}
	return attempts
}

// wait blocks until the member's rate limit admits another request.
func (m *chainMember) wait(ctx context.Context) error {
	if m.limiter == nil {
		return nil
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
