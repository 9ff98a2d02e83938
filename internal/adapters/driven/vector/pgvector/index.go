// Package pgvector provides a clause index adapter backed by PostgreSQL
// with the pgvector extension.
package pgvector

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Ensure ClauseIndex implements the interface.
var _ driven.ClauseIndex = (*ClauseIndex)(nil)

// Default configuration values.
const (
	DefaultTableName = "clause_embeddings"
	DefaultVectorDim = 768
	DefaultIVFLists  = 100
)

// Config holds configuration for the pgvector clause index.
type Config struct {
	// ConnString is the PostgreSQL connection string (required).
	ConnString string

	// TableName is the embeddings table (default: clause_embeddings).
	TableName string

	// VectorDim is the embedding dimension. Must match the embedding
	// service's Dimensions (default: 768).
	VectorDim int

	// IVFLists tunes the ivfflat index (default: 100).
	IVFLists int
}

// ClauseIndex stores and searches clause embeddings in pgvector.
type ClauseIndex struct {
	config Config
	pool   *pgxpool.Pool
}

// NewClauseIndex connects to PostgreSQL and prepares the embeddings
// table and ivfflat index.
func NewClauseIndex(ctx context.Context, cfg Config) (*ClauseIndex, error) {
	if cfg.ConnString == "" {
		return nil, fmt.Errorf("pgvector: connection string is required")
	}
	if cfg.TableName == "" {
		cfg.TableName = DefaultTableName
	}
	if cfg.VectorDim == 0 {
		cfg.VectorDim = DefaultVectorDim
	}
	if cfg.IVFLists == 0 {
		cfg.IVFLists = DefaultIVFLists
	}

	pool, err := pgxpool.New(ctx, cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("pgvector: connecting: %w", err)
	}

	idx := &ClauseIndex{
		config: cfg,
		pool:   pool,
	}

	if err := idx.initialise(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return idx, nil
}

// initialise enables the extension and creates the table and index.
func (idx *ClauseIndex) initialise(ctx context.Context) error {
	if _, err := idx.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("pgvector: creating vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			clause_id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			sequence_number INT NOT NULL DEFAULT 0,
			embedding vector(%d) NOT NULL
		)`, idx.config.TableName, idx.config.VectorDim)
	if _, err := idx.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("pgvector: creating table: %w", err)
	}

	createDocIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_document_idx ON %s (document_id)`,
		idx.config.TableName, idx.config.TableName)
	if _, err := idx.pool.Exec(ctx, createDocIndex); err != nil {
		return fmt.Errorf("pgvector: creating document index: %w", err)
	}

	createVectorIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = %d)`,
		idx.config.TableName, idx.config.TableName, idx.config.IVFLists)
	if _, err := idx.pool.Exec(ctx, createVectorIndex); err != nil {
		return fmt.Errorf("pgvector: creating vector index: %w", err)
	}

	return nil
}

// Add inserts or replaces the vector for the given clause. The sequence
// number is stored alongside the embedding so ties in similarity order
// deterministically.
func (idx *ClauseIndex) Add(ctx context.Context, clauseID, documentID string, sequence int, embedding []float32) error {
	if clauseID == "" || documentID == "" {
		return domain.ErrInvalidInput
	}
	if len(embedding) != idx.config.VectorDim {
		return fmt.Errorf("%w: embedding dimension %d, index expects %d",
			domain.ErrInvalidInput, len(embedding), idx.config.VectorDim)
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (clause_id, document_id, sequence_number, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (clause_id) DO UPDATE SET
			document_id = EXCLUDED.document_id,
			sequence_number = EXCLUDED.sequence_number,
			embedding = EXCLUDED.embedding`,
		idx.config.TableName)

	if _, err := idx.pool.Exec(ctx, stmt, clauseID, documentID, sequence, pgv.NewVector(embedding)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingWriteFailure, err)
	}
	return nil
}

// Delete removes a clause's vector from the index.
func (idx *ClauseIndex) Delete(ctx context.Context, clauseID string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE clause_id = $1", idx.config.TableName)
	if _, err := idx.pool.Exec(ctx, stmt, clauseID); err != nil {
		return fmt.Errorf("pgvector: deleting clause: %w", err)
	}
	return nil
}

// DeleteDocument removes all vectors belonging to a document.
func (idx *ClauseIndex) DeleteDocument(ctx context.Context, documentID string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE document_id = $1", idx.config.TableName)
	if _, err := idx.pool.Exec(ctx, stmt, documentID); err != nil {
		return fmt.Errorf("pgvector: deleting document vectors: %w", err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector by cosine
// distance. When documentID is non-empty, results are restricted to
// that document's clauses. Equal distances order by ascending
// sequence number.
func (idx *ClauseIndex) Search(ctx context.Context, query []float32, k int, documentID string) ([]driven.ClauseHit, error) {
	if k <= 0 {
		return nil, nil
	}

	var stmt string
	var args []any
	if documentID != "" {
		stmt = fmt.Sprintf(`
			SELECT clause_id, document_id, sequence_number, 1 - (embedding <=> $1) AS similarity
			FROM %s
			WHERE document_id = $3
			ORDER BY embedding <=> $1, sequence_number
			LIMIT $2`, idx.config.TableName)
		args = []any{pgv.NewVector(query), k, documentID}
	} else {
		stmt = fmt.Sprintf(`
			SELECT clause_id, document_id, sequence_number, 1 - (embedding <=> $1) AS similarity
			FROM %s
			ORDER BY embedding <=> $1, sequence_number
			LIMIT $2`, idx.config.TableName)
		args = []any{pgv.NewVector(query), k}
	}

	rows, err := idx.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("pgvector: querying: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// Related finds the k nearest neighbours of an indexed clause within
// its own document, excluding the clause itself.
func (idx *ClauseIndex) Related(ctx context.Context, clauseID string, k int) ([]driven.ClauseHit, error) {
	if clauseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if k <= 0 {
		return nil, nil
	}

	anchorStmt := fmt.Sprintf(
		"SELECT document_id FROM %s WHERE clause_id = $1", idx.config.TableName)
	var anchorDoc string
	if err := idx.pool.QueryRow(ctx, anchorStmt, clauseID).Scan(&anchorDoc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("clause %s not indexed: %w", clauseID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("pgvector: resolving anchor clause: %w", err)
	}

	stmt := fmt.Sprintf(`
		SELECT t.clause_id, t.document_id, t.sequence_number,
			1 - (t.embedding <=> a.embedding) AS similarity
		FROM %s t, %s a
		WHERE a.clause_id = $1
			AND t.document_id = a.document_id
			AND t.clause_id <> $1
		ORDER BY t.embedding <=> a.embedding, t.sequence_number
		LIMIT $2`, idx.config.TableName, idx.config.TableName)

	rows, err := idx.pool.Query(ctx, stmt, clauseID, k)
	if err != nil {
		return nil, fmt.Errorf("pgvector: querying related clauses: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

func scanHits(rows pgx.Rows) ([]driven.ClauseHit, error) {
	var hits []driven.ClauseHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.ClauseHit
		if err := rows.Scan(&hit.ClauseID, &hit.DocumentID, &hit.SequenceNumber, &hit.Similarity); err != nil {
			return nil, fmt.Errorf("pgvector: scanning hit: %w", err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgvector: iterating hits: %w", err)
	}

	return hits, nil
}

// Ping validates the database connection.
func (idx *ClauseIndex) Ping(ctx context.Context) error {
	if err := idx.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgvector: ping failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (idx *ClauseIndex) Close() error {
	idx.pool.Close()
	return nil
}
