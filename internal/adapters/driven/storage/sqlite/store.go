package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.clauseline/data/clauseline.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clauseline", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "clauseline.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// KnowledgeStore returns a KnowledgeStore interface backed by this store.
func (s *Store) KnowledgeStore() driven.KnowledgeStore {
	return &knowledgeStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, title, doc_type, state, failure_reason, byte_size, page_count, total_clauses, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			doc_type = excluded.doc_type,
			failure_reason = excluded.failure_reason,
			byte_size = excluded.byte_size,
			page_count = excluded.page_count,
			total_clauses = excluded.total_clauses,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Title, string(doc.Type), string(doc.State), doc.FailureReason,
		doc.ByteSize, doc.PageCount, doc.TotalClauses, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// UpdateDocumentState advances a document's lifecycle state. The read
// and write happen in one transaction so a disallowed transition can
// never be persisted, even under concurrent updates.
func (s *documentStore) UpdateDocumentState(ctx context.Context, id string, state domain.DocumentState, errMsg string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current string
	row := tx.QueryRowContext(ctx, "SELECT state FROM documents WHERE id = ?", id)
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading document state: %w", err)
	}

	if !domain.DocumentState(current).CanTransition(state) {
		return fmt.Errorf("%w: transition %s -> %s", domain.ErrInvalidInput, current, state)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE documents SET state = ?, failure_reason = ?, updated_at = ? WHERE id = ?
	`, string(state), errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating document state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, doc_type, state, failure_reason, byte_size, page_count, total_clauses, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// ListDocuments returns all documents, newest first.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, doc_type, state, failure_reason, byte_size, page_count, total_clauses, created_at, updated_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes a document; clauses and results cascade.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// SaveClauses stores the ordered clause set for a document.
func (s *documentStore) SaveClauses(ctx context.Context, clauses []domain.Clause) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO clauses
			(id, document_id, sequence_number, title, text, clause_type, start_offset, end_offset,
			 page_number, state, severity_level, risk_factors, legal_implications,
			 plain_language_explanation, compliance_flags, related_clause_ids, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			text = excluded.text,
			clause_type = excluded.clause_type,
			start_offset = excluded.start_offset,
			end_offset = excluded.end_offset,
			page_number = excluded.page_number,
			state = excluded.state,
			severity_level = excluded.severity_level,
			risk_factors = excluded.risk_factors,
			legal_implications = excluded.legal_implications,
			plain_language_explanation = excluded.plain_language_explanation,
			compliance_flags = excluded.compliance_flags,
			related_clause_ids = excluded.related_clause_ids,
			analyzed_at = excluded.analyzed_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range clauses {
		clause := &clauses[i]
		riskJSON, flagsJSON, relatedJSON, err := marshalClauseLists(clause)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, clause.ID, clause.DocumentID, clause.SequenceNumber,
			clause.Title, clause.Text, clause.Type, clause.StartOffset, clause.EndOffset,
			clause.PageNumber, string(clause.State), clause.SeverityLevel, riskJSON,
			clause.LegalImplications, clause.PlainLanguageExplanation, flagsJSON, relatedJSON,
			nullTime(clause.AnalyzedAt)); err != nil {
			return fmt.Errorf("saving clause: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateClause updates a single clause's analysis fields and state.
func (s *documentStore) UpdateClause(ctx context.Context, clause *domain.Clause) error {
	riskJSON, flagsJSON, relatedJSON, err := marshalClauseLists(clause)
	if err != nil {
		return err
	}

	result, err := s.store.db.ExecContext(ctx, `
		UPDATE clauses SET
			state = ?,
			severity_level = ?,
			risk_factors = ?,
			legal_implications = ?,
			plain_language_explanation = ?,
			compliance_flags = ?,
			related_clause_ids = ?,
			analyzed_at = ?
		WHERE id = ?
	`, string(clause.State), clause.SeverityLevel, riskJSON, clause.LegalImplications,
		clause.PlainLanguageExplanation, flagsJSON, relatedJSON, nullTime(clause.AnalyzedAt), clause.ID)
	if err != nil {
		return fmt.Errorf("updating clause: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetClauses retrieves all clauses for a document ordered by sequence number.
func (s *documentStore) GetClauses(ctx context.Context, documentID string) ([]domain.Clause, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, sequence_number, title, text, clause_type, start_offset, end_offset,
		       page_number, state, severity_level, risk_factors, legal_implications,
		       plain_language_explanation, compliance_flags, related_clause_ids, analyzed_at
		FROM clauses WHERE document_id = ?
		ORDER BY sequence_number
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying clauses: %w", err)
	}
	defer rows.Close()

	var clauses []domain.Clause //nolint:prealloc // size unknown from query
	for rows.Next() {
		clause, err := scanClauseRows(rows)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, *clause)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clauses: %w", err)
	}

	return clauses, nil
}

// GetClause retrieves a specific clause by ID.
func (s *documentStore) GetClause(ctx context.Context, id string) (*domain.Clause, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, sequence_number, title, text, clause_type, start_offset, end_offset,
		       page_number, state, severity_level, risk_factors, legal_implications,
		       plain_language_explanation, compliance_flags, related_clause_ids, analyzed_at
		FROM clauses WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying clause: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying clause: %w", err)
		}
		return nil, domain.ErrNotFound
	}
	return scanClauseRows(rows)
}

// ClausesInState returns clause IDs for a document in the given state.
func (s *documentStore) ClausesInState(ctx context.Context, documentID string, state domain.ClauseState) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id FROM clauses WHERE document_id = ? AND state = ? ORDER BY sequence_number
	`, documentID, string(state))
	if err != nil {
		return nil, fmt.Errorf("querying clauses by state: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning clause id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clause ids: %w", err)
	}

	return ids, nil
}

// SaveResult persists the frozen summary and navigation for a completed document.
func (s *documentStore) SaveResult(ctx context.Context, summary *domain.DocumentSummary, nav *domain.TimelineNavigation) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}
	navJSON, err := json.Marshal(nav)
	if err != nil {
		return fmt.Errorf("marshalling navigation: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO results (document_id, summary, navigation, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			summary = excluded.summary,
			navigation = excluded.navigation
	`, summary.DocumentID, string(summaryJSON), string(navJSON), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	return nil
}

// GetSummary retrieves the summary for a completed document.
func (s *documentStore) GetSummary(ctx context.Context, documentID string) (*domain.DocumentSummary, error) {
	var summaryJSON string
	row := s.store.db.QueryRowContext(ctx, "SELECT summary FROM results WHERE document_id = ?", documentID)
	if err := row.Scan(&summaryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning summary: %w", err)
	}

	var summary domain.DocumentSummary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, fmt.Errorf("unmarshaling summary: %w", err)
	}
	return &summary, nil
}

// GetNavigation retrieves the navigation for a completed document.
func (s *documentStore) GetNavigation(ctx context.Context, documentID string) (*domain.TimelineNavigation, error) {
	var navJSON string
	row := s.store.db.QueryRowContext(ctx, "SELECT navigation FROM results WHERE document_id = ?", documentID)
	if err := row.Scan(&navJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning navigation: %w", err)
	}

	var nav domain.TimelineNavigation
	if err := json.Unmarshal([]byte(navJSON), &nav); err != nil {
		return nil, fmt.Errorf("unmarshaling navigation: %w", err)
	}
	return &nav, nil
}

// Close releases resources. The underlying connection is shared, so
// closing is handled by the parent Store.
func (s *documentStore) Close() error {
	return nil
}

// ==================== Knowledge Store ====================

// knowledgeStore implements driven.KnowledgeStore.
type knowledgeStore struct {
	store *Store
}

var _ driven.KnowledgeStore = (*knowledgeStore)(nil)

// SeedEntries inserts entries that do not already exist. Entries have
// stable IDs, so repeated seeding is a no-op.
func (s *knowledgeStore) SeedEntries(ctx context.Context, entries []domain.KnowledgeEntry) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO knowledge_entries
			(id, title, content, content_type, jurisdiction, categories, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("%w: knowledge entry without id", domain.ErrInvalidInput)
		}
		categoriesJSON, err := json.Marshal(entry.Categories)
		if err != nil {
			return fmt.Errorf("marshalling categories: %w", err)
		}

		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		if _, err := stmt.ExecContext(ctx, entry.ID, entry.Title, entry.Content,
			entry.ContentType, entry.Jurisdiction, string(categoriesJSON), createdAt); err != nil {
			return fmt.Errorf("seeding knowledge entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// EntriesForCategories returns entries tagged with any of the given categories.
func (s *knowledgeStore) EntriesForCategories(ctx context.Context, categories []string) ([]domain.KnowledgeEntry, error) {
	all, err := s.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var matched []domain.KnowledgeEntry
	for _, entry := range all {
		for _, c := range entry.Categories {
			if wanted[c] {
				matched = append(matched, entry)
				break
			}
		}
	}
	return matched, nil
}

// ListEntries returns all entries.
func (s *knowledgeStore) ListEntries(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, content, content_type, jurisdiction, categories, created_at
		FROM knowledge_entries ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.KnowledgeEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.KnowledgeEntry
		var categoriesJSON string
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.ContentType,
			&entry.Jurisdiction, &categoriesJSON, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning knowledge entry: %w", err)
		}
		if err := json.Unmarshal([]byte(categoriesJSON), &entry.Categories); err != nil {
			return nil, fmt.Errorf("unmarshaling categories: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating knowledge entries: %w", err)
	}

	return entries, nil
}

// ==================== Helper Functions ====================

// marshalClauseLists encodes the clause's list fields as JSON.
func marshalClauseLists(clause *domain.Clause) (risk, flags, related string, err error) {
	riskJSON, err := json.Marshal(emptyIfNil(clause.RiskFactors))
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling risk factors: %w", err)
	}
	flagsJSON, err := json.Marshal(emptyIfNil(clause.ComplianceFlags))
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling compliance flags: %w", err)
	}
	relatedJSON, err := json.Marshal(emptyIfNil(clause.RelatedClauseIDs))
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling related clause ids: %w", err)
	}
	return string(riskJSON), string(flagsJSON), string(relatedJSON), nil
}

// emptyIfNil normalises a nil slice to an empty one so the stored JSON
// is always an array.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// nullTime converts a zero time to NULL for storage.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var docType, state string

	if err := row.Scan(&doc.ID, &doc.Title, &docType, &state, &doc.FailureReason,
		&doc.ByteSize, &doc.PageCount, &doc.TotalClauses, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Type = domain.DocumentType(docType)
	doc.State = domain.DocumentState(state)
	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var docType, state string

	if err := rows.Scan(&doc.ID, &doc.Title, &docType, &state, &doc.FailureReason,
		&doc.ByteSize, &doc.PageCount, &doc.TotalClauses, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Type = domain.DocumentType(docType)
	doc.State = domain.DocumentState(state)
	return &doc, nil
}

// scanClauseRows scans a clause from *sql.Rows.
func scanClauseRows(rows *sql.Rows) (*domain.Clause, error) {
	var clause domain.Clause
	var state string
	var riskJSON, flagsJSON, relatedJSON string
	var analyzedAt sql.NullTime

	if err := rows.Scan(&clause.ID, &clause.DocumentID, &clause.SequenceNumber, &clause.Title,
		&clause.Text, &clause.Type, &clause.StartOffset, &clause.EndOffset, &clause.PageNumber,
		&state, &clause.SeverityLevel, &riskJSON, &clause.LegalImplications,
		&clause.PlainLanguageExplanation, &flagsJSON, &relatedJSON, &analyzedAt); err != nil {
		return nil, fmt.Errorf("scanning clause: %w", err)
	}

	clause.State = domain.ClauseState(state)
	if err := json.Unmarshal([]byte(riskJSON), &clause.RiskFactors); err != nil {
		return nil, fmt.Errorf("unmarshaling risk factors: %w", err)
	}
	if err := json.Unmarshal([]byte(flagsJSON), &clause.ComplianceFlags); err != nil {
		return nil, fmt.Errorf("unmarshaling compliance flags: %w", err)
	}
	if err := json.Unmarshal([]byte(relatedJSON), &clause.RelatedClauseIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling related clause ids: %w", err)
	}
	if analyzedAt.Valid {
		clause.AnalyzedAt = analyzedAt.Time
	}
	return &clause, nil
}
