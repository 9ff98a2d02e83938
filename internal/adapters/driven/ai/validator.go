package ai

import (
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding validates an embedding configuration by pinging the provider.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}

// ValidateJudge validates a judge configuration by pinging the provider.
func (v *ConfigValidator) ValidateJudge(config *domain.JudgeSettings) error {
	return ValidateJudgeConfig(config)
}
