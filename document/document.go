/*
Package document defines the versioned plan document and its store.

PURPOSE:
  The dashboard's entire user-entered state travels as one opaque JSON
  blob wrapped in a small version envelope. This package owns that
  envelope and the store contract; it knows nothing about what the blob
  contains.

ENVELOPE:
  schemaVersion  Payload schema generation (migrations live elsewhere)
  rev            Opaque revision id, fresh on every save
  updatedAt      Server-side save timestamp (UTC)
  data           The opaque payload

OPTIMISTIC CONCURRENCY:
  Save takes the revision the caller last saw. A mismatch means someone
  else saved in between; the store rejects with ErrRevConflict and the
  caller re-pulls. There is no merge - last writer with a fresh rev wins.

IMPLEMENTATIONS:
  - document/store: in-memory (tests, dev)
  - store/sqlite: durable single-tenant store

SEE ALSO:
  - api/handlers.go: exposes pull/push over HTTP
*/
package document

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CurrentSchemaVersion is stamped on every saved document.
const CurrentSchemaVersion = 1

// =============================================================================
// ENVELOPE
// =============================================================================

// Document is the versioned envelope around the opaque plan payload.
type Document struct {
	SchemaVersion int             `json:"schemaVersion"`
	Rev           string          `json:"rev"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Data          json.RawMessage `json:"data"`
}

// NewRev generates a fresh opaque revision id.
func NewRev() string { return uuid.NewString() }

// =============================================================================
// STORE CONTRACT
// =============================================================================

// Sentinel errors, matched with errors.Is.
var (
	// ErrNotFound is returned by Load when nothing has been saved yet.
	ErrNotFound = errors.New("no plan document saved")

	// ErrRevConflict is returned by Save when expectedRev is stale.
	ErrRevConflict = errors.New("plan document revision conflict")
)

// Store persists the single plan document. Save replaces the whole
// payload: the blob is opaque, so there is nothing finer to update.
type Store interface {
	// Load returns the current document, or ErrNotFound.
	Load(ctx context.Context) (Document, error)

	// Save replaces the document if expectedRev matches the stored
	// revision, returning the new envelope. The first save into an
	// empty store ignores expectedRev.
	Save(ctx context.Context, data json.RawMessage, expectedRev string) (Document, error)
}
