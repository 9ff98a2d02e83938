// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor / ExtractorRegistry: Converts uploads into analysable text
//   - DocumentStore: Document, clause and summary persistence
//   - KnowledgeStore: Seeded legal reference material
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - JudgeProvider: Clause analysis. Without at least one, clauses carry
//     placeholder judgments and RAG answer synthesis is disabled.
//   - EmbeddingService: Generates vector embeddings. Without it, ClauseIndex
//     and RAG retrieval are also disabled.
//   - ClauseIndex: Vector storage/search. Only enabled when EmbeddingService
//     is configured.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
