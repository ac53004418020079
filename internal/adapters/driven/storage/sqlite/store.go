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

	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ProjectStore = (*Store)(nil)

// Store is a SQLite-based project store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.redraft/data/projects.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".redraft", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "projects.db")

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

// SaveManuscript stores or updates a manuscript and its documents.
// The document set is replaced wholesale so saved snapshots never
// carry chapters that were removed in memory.
func (s *Store) SaveManuscript(ctx context.Context, ms *domain.Manuscript) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO manuscripts (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			updated_at = excluded.updated_at
	`, ms.ID, ms.Title, now, now)
	if err != nil {
		return fmt.Errorf("saving manuscript: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE manuscript_id = ?", ms.ID); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, manuscript_id, position, title, text, word_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, doc := range ms.Documents {
		updatedAt := doc.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, doc.ID, ms.ID, i, doc.Title,
			doc.Text, doc.WordCount, updatedAt); err != nil {
			return fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetManuscript retrieves a manuscript with its documents in display order.
func (s *Store) GetManuscript(ctx context.Context, id string) (*domain.Manuscript, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title FROM manuscripts WHERE id = ?
	`, id)

	var ms domain.Manuscript
	if err := row.Scan(&ms.ID, &ms.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning manuscript: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, text, word_count, updated_at
		FROM documents WHERE manuscript_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc domain.Document
		var updatedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Text, &doc.WordCount, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if updatedAt.Valid {
			doc.UpdatedAt = updatedAt.Time
		}
		ms.Documents = append(ms.Documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return &ms, nil
}

// ListManuscripts returns all stored manuscripts without their document
// text (titles and IDs only).
func (s *Store) ListManuscripts(ctx context.Context) ([]domain.Manuscript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title FROM manuscripts ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying manuscripts: %w", err)
	}
	defer rows.Close()

	var manuscripts []domain.Manuscript //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ms domain.Manuscript
		if err := rows.Scan(&ms.ID, &ms.Title); err != nil {
			return nil, fmt.Errorf("scanning manuscript: %w", err)
		}
		manuscripts = append(manuscripts, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manuscripts: %w", err)
	}

	return manuscripts, nil
}

// DeleteManuscript removes a manuscript, its suggestions and its
// analysis record. Child rows go via foreign key cascade.
func (s *Store) DeleteManuscript(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM manuscripts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting manuscript: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveSuggestions replaces the stored suggestion list for a manuscript,
// preserving order.
func (s *Store) SaveSuggestions(ctx context.Context, manuscriptID string, suggestions []domain.Suggestion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM suggestions WHERE manuscript_id = ?", manuscriptID); err != nil {
		return fmt.Errorf("clearing suggestions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO suggestions (manuscript_id, position, id, document_id, kind,
			original_text, suggested_text, rationale, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, sug := range suggestions {
		if _, err := stmt.ExecContext(ctx, manuscriptID, i, sug.ID, sug.DocumentID,
			string(sug.Kind), sug.OriginalText, sug.SuggestedText,
			sug.Rationale, string(sug.Status)); err != nil {
			return fmt.Errorf("saving suggestion %s: %w", sug.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetSuggestions returns the stored suggestions in arrival order.
func (s *Store) GetSuggestions(ctx context.Context, manuscriptID string) ([]domain.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, kind, original_text, suggested_text, rationale, status
		FROM suggestions WHERE manuscript_id = ?
		ORDER BY position
	`, manuscriptID)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []domain.Suggestion //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sug domain.Suggestion
		var kind, status string
		if err := rows.Scan(&sug.ID, &sug.DocumentID, &kind, &sug.OriginalText,
			&sug.SuggestedText, &sug.Rationale, &status); err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		sug.Kind = domain.SuggestionKind(kind)
		sug.Status = domain.SuggestionStatus(status)
		suggestions = append(suggestions, sug)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suggestions: %w", err)
	}

	return suggestions, nil
}

// SaveAnalysis stores or updates the analysis record. Each kind's
// payload is stored as its own nullable JSON column so refreshing one
// kind never disturbs another.
func (s *Store) SaveAnalysis(ctx context.Context, rec *domain.AnalysisRecord) error {
	synopsis, err := marshalNullable(rec.Synopsis)
	if err != nil {
		return fmt.Errorf("marshalling synopsis: %w", err)
	}
	health, err := marshalNullable(rec.Health)
	if err != nil {
		return fmt.Errorf("marshalling health: %w", err)
	}
	continuity, err := marshalNullable(rec.Continuity)
	if err != nil {
		return fmt.Errorf("marshalling continuity: %w", err)
	}
	themes, err := marshalNullable(rec.Themes)
	if err != nil {
		return fmt.Errorf("marshalling themes: %w", err)
	}
	cohesion, err := marshalNullable(rec.Cohesion)
	if err != nil {
		return fmt.Errorf("marshalling cohesion: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis (manuscript_id, synopsis, health, continuity, themes, cohesion, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(manuscript_id) DO UPDATE SET
			synopsis = excluded.synopsis,
			health = excluded.health,
			continuity = excluded.continuity,
			themes = excluded.themes,
			cohesion = excluded.cohesion,
			updated_at = excluded.updated_at
	`, rec.ManuscriptID, synopsis, health, continuity, themes, cohesion, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves the analysis record, or domain.ErrNotFound if
// no scan has ever run for the manuscript.
func (s *Store) GetAnalysis(ctx context.Context, manuscriptID string) (*domain.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT synopsis, health, continuity, themes, cohesion, updated_at
		FROM analysis WHERE manuscript_id = ?
	`, manuscriptID)

	var synopsis, health, continuity, themes, cohesion sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(&synopsis, &health, &continuity, &themes, &cohesion, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}

	rec := &domain.AnalysisRecord{ManuscriptID: manuscriptID}
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}

	if err := unmarshalNullable(synopsis, &rec.Synopsis); err != nil {
		return nil, fmt.Errorf("unmarshalling synopsis: %w", err)
	}
	if err := unmarshalNullable(health, &rec.Health); err != nil {
		return nil, fmt.Errorf("unmarshalling health: %w", err)
	}
	if err := unmarshalNullable(continuity, &rec.Continuity); err != nil {
		return nil, fmt.Errorf("unmarshalling continuity: %w", err)
	}
	if err := unmarshalNullable(themes, &rec.Themes); err != nil {
		return nil, fmt.Errorf("unmarshalling themes: %w", err)
	}
	if err := unmarshalNullable(cohesion, &rec.Cohesion); err != nil {
		return nil, fmt.Errorf("unmarshalling cohesion: %w", err)
	}

	return rec, nil
}

// marshalNullable JSON-encodes v, mapping a nil pointer to SQL NULL.
func marshalNullable[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalNullable decodes a nullable JSON column into *out, leaving
// it nil for SQL NULL.
func unmarshalNullable[T any](col sql.NullString, out **T) error {
	if !col.Valid {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		return err
	}
	*out = &v
	return nil
}
