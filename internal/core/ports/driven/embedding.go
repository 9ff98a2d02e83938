package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, clause indexing and RAG
// retrieval are disabled.
//
// Note: This is separate from ClauseIndex which stores and searches
// vectors. EmbeddingService generates vectors; ClauseIndex stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	// This is determined by the model and must match ClauseIndex configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify connectivity before enabling RAG.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
