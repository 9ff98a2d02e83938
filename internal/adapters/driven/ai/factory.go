// Package ai provides factory functions for creating AI service adapters
// and the judge chain that sequences them.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/llm/openai"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'clauseline config show' to review settings",
			domain.ErrEmbeddingUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'clauseline config show' to review settings",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateJudge creates a judge provider and validates connectivity.
// Returns the judge if successful, or an error with guidance.
func CreateAndValidateJudge(settings *domain.JudgeSettings) (driven.JudgeProvider, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	judge, err := CreateJudge(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'clauseline config show' to review settings",
			domain.ErrJudgeUnavailable, err)
	}

	if judge == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := judge.Ping(ctx); err != nil {
		judge.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'clauseline config show' to review settings",
			domain.ErrJudgeUnavailable, err)
	}

	return judge, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// This is intended for validating credentials at configuration time.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateJudgeConfig validates a judge configuration by creating a provider and pinging it.
// This is intended for validating credentials at configuration time.
func ValidateJudgeConfig(settings *domain.JudgeSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	judge, err := CreateJudge(settings)
	if err != nil {
		return err
	}
	if judge == nil {
		return nil
	}
	defer judge.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return judge.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderAnthropic:
		// Anthropic does not support embeddings.
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateJudge creates the appropriate judge provider based on settings.
// Returns nil if the provider is not configured.
func CreateJudge(settings *domain.JudgeSettings) (driven.JudgeProvider, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewJudge(ollamallm.Config{
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			MaxTokens: settings.MaxTokens,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewJudge(openaillm.Config{
			APIKey:    settings.APIKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			MaxTokens: settings.MaxTokens,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewJudge(anthropicllm.Config{
			APIKey:    settings.APIKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			MaxTokens: settings.MaxTokens,
		})

	default:
		return nil, fmt.Errorf("unsupported judge provider: %s", settings.Provider)
	}
}
