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

	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

// dbFile is the database file name inside the data directory.
const dbFile = "promptsmith.db"

// Store is a SQLite-based storage that provides access to the pack and
// composition store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.promptsmith/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".promptsmith", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL mode lets the HTTP server read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// PackStore returns a PackStore interface backed by this store.
func (s *Store) PackStore() driven.PackStore {
	return &packStore{store: s}
}

// CompositionStore returns a CompositionStore interface backed by this store.
func (s *Store) CompositionStore() driven.CompositionStore {
	return &compositionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Pack Store ====================

// packStore implements driven.PackStore.
type packStore struct {
	store *Store
}

var _ driven.PackStore = (*packStore)(nil)

// Save stores or replaces a pack. The creation time of an existing pack is kept.
func (s *packStore) Save(ctx context.Context, pack *domain.Pack) error {
	if pack == nil || pack.ID == "" {
		return domain.ErrInvalidInput
	}

	doc, err := schema.Marshal(pack)
	if err != nil {
		return err
	}
	tagsJSON, err := json.Marshal(nonNil(pack.Tags))
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	now := time.Now().UTC()
	createdAt := pack.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO packs (id, name, author, description, tags, slot_count, document, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			author = excluded.author,
			description = excluded.description,
			tags = excluded.tags,
			slot_count = excluded.slot_count,
			document = excluded.document,
			source = excluded.source,
			updated_at = excluded.updated_at
	`, pack.ID, pack.Name, pack.Author, pack.Description, string(tagsJSON), len(pack.Slots),
		string(doc), nullString(pack.Source), createdAt, now)
	if err != nil {
		return fmt.Errorf("saving pack: %w", err)
	}
	return nil
}

// Get retrieves a pack by ID.
func (s *packStore) Get(ctx context.Context, id string) (*domain.Pack, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document, source, created_at, updated_at FROM packs WHERE id = ?
	`, id)

	var doc string
	var source sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&doc, &source, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning pack: %w", err)
	}

	pack, err := schema.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("decoding stored pack %s: %w", id, err)
	}
	pack.ID = id
	pack.Source = source.String
	if createdAt.Valid {
		pack.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		pack.UpdatedAt = updatedAt.Time
	}
	return pack, nil
}

// Delete removes a pack; its compositions go with it.
func (s *packStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM packs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting pack: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns pack summaries ordered by name.
func (s *packStore) List(ctx context.Context) ([]domain.PackSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, author, description, tags, slot_count, updated_at
		FROM packs ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying packs: %w", err)
	}
	defer rows.Close()

	var packs []domain.PackSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.PackSummary
		var tagsJSON string
		var updatedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Author, &p.Description, &tagsJSON, &p.SlotCount, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning pack: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
		if updatedAt.Valid {
			p.UpdatedAt = updatedAt.Time
		}
		packs = append(packs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating packs: %w", err)
	}
	return packs, nil
}

// ==================== Composition Store ====================

// compositionStore implements driven.CompositionStore.
type compositionStore struct {
	store *Store
}

var _ driven.CompositionStore = (*compositionStore)(nil)

const compositionColumns = "id, pack_id, template, prompt, seed, selections, tags, created_at"

// Save stores a composition.
func (s *compositionStore) Save(ctx context.Context, c *domain.Composition) error {
	if c == nil || c.ID == "" {
		return domain.ErrInvalidInput
	}

	selJSON, err := json.Marshal(c.Selections)
	if err != nil {
		return fmt.Errorf("marshalling selections: %w", err)
	}
	tagsJSON, err := json.Marshal(nonNil(c.Tags))
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO compositions (`+compositionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.PackID, c.Template, c.Prompt, int64(c.Seed), string(selJSON), string(tagsJSON), createdAt)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("saving composition for pack %s: %w", c.PackID, domain.ErrNotFound)
		}
		return fmt.Errorf("saving composition: %w", err)
	}
	return nil
}

// Get retrieves a composition by ID.
func (s *compositionStore) Get(ctx context.Context, id string) (*domain.Composition, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+compositionColumns+" FROM compositions WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("querying composition: %w", err)
	}
	list, err := scanCompositions(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &list[0], nil
}

// ListByPack returns compositions newest first.
func (s *compositionStore) ListByPack(ctx context.Context, packID string, limit int) ([]domain.Composition, error) {
	query := "SELECT " + compositionColumns + " FROM compositions"
	var args []any
	if packID != "" {
		query += " WHERE pack_id = ?"
		args = append(args, packID)
	}
	query += " ORDER BY created_at DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying compositions: %w", err)
	}
	return scanCompositions(rows)
}

// Delete removes a composition.
func (s *compositionStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM compositions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting composition: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByPack removes every composition of a pack.
func (s *compositionStore) DeleteByPack(ctx context.Context, packID string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM compositions WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("deleting compositions: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

func scanCompositions(rows *sql.Rows) ([]domain.Composition, error) {
	defer rows.Close()

	var out []domain.Composition //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Composition
		var seed int64
		var selJSON, tagsJSON string
		if err := rows.Scan(&c.ID, &c.PackID, &c.Template, &c.Prompt, &seed, &selJSON, &tagsJSON, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning composition: %w", err)
		}
		c.Seed = uint64(seed)
		if err := json.Unmarshal([]byte(selJSON), &c.Selections); err != nil {
			return nil, fmt.Errorf("unmarshaling selections: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &c.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating compositions: %w", err)
	}
	return out, nil
}

// nullString converts an empty string to sql.NullString{Valid: false}.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
