// Package store provides document.Store implementations.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/warp/cashplan/document"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu  sync.RWMutex
	doc *document.Document
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.doc == nil {
		return document.Document{}, document.ErrNotFound
	}
	return cloneDocument(*m.doc), nil
}

func (m *Memory) Save(_ context.Context, data json.RawMessage, expectedRev string) (document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc != nil && expectedRev != m.doc.Rev {
		return document.Document{}, document.ErrRevConflict
	}

	doc := document.Document{
		SchemaVersion: document.CurrentSchemaVersion,
		Rev:           document.NewRev(),
		UpdatedAt:     time.Now().UTC(),
		Data:          append(json.RawMessage(nil), data...),
	}
	m.doc = &doc
	return cloneDocument(doc), nil
}

// cloneDocument copies the payload so callers cannot mutate stored state.
func cloneDocument(doc document.Document) document.Document {
	doc.Data = append(json.RawMessage(nil), doc.Data...)
	return doc
}
