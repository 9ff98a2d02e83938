package file

import (
	"os"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Configuration keys. Nested TOML tables flatten to these dot-notation
// keys, so config.toml uses [judge], [embedding] and [analysis] tables.
const (
	KeyJudgeProvider  = "judge.provider"
	KeyJudgeModel     = "judge.model"
	KeyJudgeBaseURL   = "judge.base_url"
	KeyJudgeAPIKey    = "judge.api_key"
	KeyJudgeMaxTokens = "judge.max_tokens"
	KeyJudgeRPM       = "judge.requests_per_minute"

	KeyEmbeddingProvider   = "embedding.provider"
	KeyEmbeddingModel      = "embedding.model"
	KeyEmbeddingBaseURL    = "embedding.base_url"
	KeyEmbeddingAPIKey     = "embedding.api_key"
	KeyEmbeddingDimensions = "embedding.dimensions"

	KeyAnalysisConcurrency      = "analysis.clause_concurrency"
	KeyAnalysisMaxUploadBytes   = "analysis.max_upload_bytes"
	KeyAnalysisEmbeddingRetries = "analysis.embedding_retries"
	KeyAnalysisProviderOrder    = "analysis.provider_order"

	KeyVectorConnString = "vector.conn_string"
	KeyDataDir          = "data.dir"
)

// Environment variables override file-stored API keys so secrets can
// stay out of config.toml.
const (
	envOpenAIKey    = "OPENAI_API_KEY"
	envAnthropicKey = "ANTHROPIC_API_KEY"
)

// Analysis pipeline defaults.
const (
	DefaultClauseConcurrency = 4
	DefaultMaxUploadBytes    = 10 << 20 // 10 MiB
	DefaultEmbeddingRetries  = 3
)

// JudgeSettings builds judge provider settings from the config store.
func JudgeSettings(cfg driven.ConfigStore) domain.JudgeSettings {
	provider := domain.AIProvider(cfg.GetString(KeyJudgeProvider))
	settings := domain.JudgeSettings{
		Provider:          provider,
		Model:             cfg.GetString(KeyJudgeModel),
		BaseURL:           cfg.GetString(KeyJudgeBaseURL),
		APIKey:            cfg.GetString(KeyJudgeAPIKey),
		MaxTokens:         cfg.GetInt(KeyJudgeMaxTokens),
		RequestsPerMinute: cfg.GetInt(KeyJudgeRPM),
	}
	if key := apiKeyFromEnv(provider); key != "" {
		settings.APIKey = key
	}
	return settings
}

// EmbeddingSettings builds embedding provider settings from the config store.
func EmbeddingSettings(cfg driven.ConfigStore) domain.EmbeddingSettings {
	provider := domain.AIProvider(cfg.GetString(KeyEmbeddingProvider))
	settings := domain.EmbeddingSettings{
		Provider:   provider,
		Model:      cfg.GetString(KeyEmbeddingModel),
		BaseURL:    cfg.GetString(KeyEmbeddingBaseURL),
		APIKey:     cfg.GetString(KeyEmbeddingAPIKey),
		Dimensions: cfg.GetInt(KeyEmbeddingDimensions),
	}
	if key := apiKeyFromEnv(provider); key != "" {
		settings.APIKey = key
	}
	return settings
}

// AnalysisSettings builds pipeline settings from the config store,
// applying defaults for unset keys.
func AnalysisSettings(cfg driven.ConfigStore) domain.AnalysisSettings {
	settings := domain.AnalysisSettings{
		ClauseConcurrency: cfg.GetInt(KeyAnalysisConcurrency),
		MaxUploadBytes:    int64(cfg.GetInt(KeyAnalysisMaxUploadBytes)),
		EmbeddingRetries:  cfg.GetInt(KeyAnalysisEmbeddingRetries),
	}
	if settings.ClauseConcurrency <= 0 {
		settings.ClauseConcurrency = DefaultClauseConcurrency
	}
	if settings.MaxUploadBytes <= 0 {
		settings.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if settings.EmbeddingRetries <= 0 {
		settings.EmbeddingRetries = DefaultEmbeddingRetries
	}

	for _, name := range cfg.GetStringSlice(KeyAnalysisProviderOrder) {
		provider := domain.AIProvider(name)
		if provider.IsValid() {
			settings.ProviderOrder = append(settings.ProviderOrder, provider)
		}
	}
	if len(settings.ProviderOrder) == 0 {
		settings.ProviderOrder = []domain.AIProvider{domain.AIProviderOllama}
	}
	return settings
}

// apiKeyFromEnv returns the provider's API key from the environment.
func apiKeyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv(envOpenAIKey)
	case domain.AIProviderAnthropic:
		return os.Getenv(envAnthropicKey)
	default:
		return ""
	}
}
