/*
Package sqlite provides a SQLite-backed implementation of document.Store.

PURPOSE:
  Durable storage for the single-tenant plan document. The dashboard has
  exactly one document, so the schema is one table holding one row; the
  interesting part is the revision check, which runs inside a database
  transaction so concurrent saves cannot both win.

KEY TABLE:
  plan_documents: id (always 1), schema_version, rev, updated_at,
  data_json

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so the read-heavy
  forecast endpoints never block behind a save.

USAGE:
  store, err := sqlite.New("./data/cashplan.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  Use ":memory:" for tests.

MIGRATION:
  Schema is auto-migrated on New(). With a single-row table a versioned
  migration tool would be overhead without benefit.

SEE ALSO:
  - document/document.go: Store contract and envelope
  - document/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/cashplan/document"
)

// Store implements document.Store on SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer, one document. A single connection also keeps
	// ":memory:" databases coherent across the pool.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plan_documents (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		schema_version INTEGER NOT NULL,
		rev TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		data_json TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the current document, or document.ErrNotFound.
func (s *Store) Load(ctx context.Context) (document.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT schema_version, rev, updated_at, data_json FROM plan_documents WHERE id = 1`)

	var doc document.Document
	var updatedAt, dataJSON string
	err := row.Scan(&doc.SchemaVersion, &doc.Rev, &updatedAt, &dataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return document.Document{}, document.ErrNotFound
	}
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to load document: %w", err)
	}

	doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return document.Document{}, fmt.Errorf("corrupt updated_at: %w", err)
	}
	doc.Data = json.RawMessage(dataJSON)
	return doc, nil
}

// Save replaces the document after checking the caller's revision.
// The check and the write share one transaction.
func (s *Store) Save(ctx context.Context, data json.RawMessage, expectedRev string) (document.Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currentRev string
	err = tx.QueryRowContext(ctx, `SELECT rev FROM plan_documents WHERE id = 1`).Scan(&currentRev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First save into an empty store: any expectedRev is accepted.
	case err != nil:
		return document.Document{}, fmt.Errorf("failed to read current revision: %w", err)
	case expectedRev != currentRev:
		return document.Document{}, document.ErrRevConflict
	}

	doc := document.Document{
		SchemaVersion: document.CurrentSchemaVersion,
		Rev:           document.NewRev(),
		UpdatedAt:     time.Now().UTC(),
		Data:          append(json.RawMessage(nil), data...),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plan_documents (id, schema_version, rev, updated_at, data_json)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			rev = excluded.rev,
			updated_at = excluded.updated_at,
			data_json = excluded.data_json`,
		doc.SchemaVersion, doc.Rev, doc.UpdatedAt.Format(time.RFC3339Nano), string(doc.Data))
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to save document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return document.Document{}, fmt.Errorf("failed to commit save: %w", err)
	}
	return doc, nil
}
