// Package ollama provides a judge provider adapter using a local
// Ollama instance.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/llm"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure Judge implements the interface.
var _ driven.JudgeProvider = (*Judge)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "http://localhost:11434"
	DefaultModel     = "llama3.2"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1000

	// judgeTemperature keeps judgments near-deterministic.
	judgeTemperature = 0.1
)

// Config holds configuration for the Ollama judge.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// MaxTokens caps the judgment response length (default: 1000).
	MaxTokens int
}

// Judge analyses clauses using the Ollama generate API.
type Judge struct {
	client    *http.Client
	baseURL   string
	model     string
	maxTokens int
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	System  string   `json:"system,omitempty"`
	Stream  bool     `json:"stream"`
	Format  string   `json:"format,omitempty"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewJudge creates a new Ollama judge.
func NewJudge(cfg Config) *Judge {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	return &Judge{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Judge analyses a single clause and returns a schema-validated judgment.
// Ollama's JSON format mode constrains the output to a single object.
func (j *Judge) Judge(ctx context.Context, req driven.JudgeRequest) (*domain.Judgment, error) {
	content, err := j.generate(ctx, llm.SystemPrompt, llm.BuildJudgePrompt(req), j.maxTokens, "json")
	if err != nil {
		return nil, err
	}

	judgment, err := llm.DecodeJudgment(content)
	if err != nil {
		return nil, fmt.Errorf("ollama judgment: %w", err)
	}
	return judgment, nil
}

// Generate produces a free-text completion from a prompt.
func (j *Judge) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = j.maxTokens
	}
	return j.generate(ctx, "", prompt, maxTokens, "")
}

// generate sends one generate API request.
func (j *Judge) generate(ctx context.Context, system, prompt string, maxTokens int, format string) (string, error) {
	reqBody := generateRequest{
		Model:  j.model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Format: format,
		Options: &options{
			NumPredict:  maxTokens,
			Temperature: judgeTemperature,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		j.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return genResp.Response, nil
}

// Provider returns which AI provider backs this judge.
func (j *Judge) Provider() domain.AIProvider {
	return domain.AIProviderOllama
}

// ModelName returns the name of the model being used.
func (j *Judge) ModelName() string {
	return j.model
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (j *Judge) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := j.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (j *Judge) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
