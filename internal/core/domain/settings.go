package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or clause judging.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// JudgeSettings holds configuration for a single clause-judging provider.
type JudgeSettings struct {
	// Provider is the judge service provider.
	Provider AIProvider

	// Model is the model name used for clause judging.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// MaxTokens caps the response length per clause judgment.
	MaxTokens int

	// RequestsPerMinute throttles calls to this provider. Zero means
	// no throttle.
	RequestsPerMinute int
}

// IsConfigured returns true if the judge provider is set up.
func (j JudgeSettings) IsConfigured() bool {
	if !j.Provider.IsValid() {
		return false
	}
	if j.Provider.RequiresAPIKey() && j.APIKey == "" {
		return false
	}
	return true
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is the expected vector size. Must match the clause
	// index schema.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// AnalysisSettings holds pipeline tuning knobs.
type AnalysisSettings struct {
	// ClauseConcurrency bounds how many clauses are analysed in
	// parallel per document.
	ClauseConcurrency int

	// MaxUploadBytes is the upload size ceiling.
	MaxUploadBytes int64

	// EmbeddingRetries bounds retry attempts for index writes.
	EmbeddingRetries int

	// ProviderOrder is the default judge provider preference. A
	// per-submission preference overrides it.
	ProviderOrder []AIProvider
}
