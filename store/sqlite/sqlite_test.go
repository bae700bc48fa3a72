package sqlite_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/cashplan/document"
	"github.com/warp/cashplan/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestSQLite_SaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"settings":{"startMonth":"2025-01"},"extras":[]}`)
	saved, err := store.Save(ctx, payload, "")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Rev)
	assert.Equal(t, document.CurrentSchemaVersion, saved.SchemaVersion)
	assert.False(t, saved.UpdatedAt.IsZero())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Rev, loaded.Rev)
	assert.JSONEq(t, string(payload), string(loaded.Data))
	assert.True(t, saved.UpdatedAt.Equal(loaded.UpdatedAt), "updatedAt: %s != %s", saved.UpdatedAt, loaded.UpdatedAt)
}

func TestSQLite_RevConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, json.RawMessage(`{"v":1}`), "")
	require.NoError(t, err)

	// Stale revision is rejected
	_, err = store.Save(ctx, json.RawMessage(`{"v":2}`), "stale")
	assert.ErrorIs(t, err, document.ErrRevConflict)

	// The stored payload is untouched after the rejected save
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(loaded.Data))

	// Current revision wins and produces a fresh rev
	second, err := store.Save(ctx, json.RawMessage(`{"v":2}`), first.Rev)
	require.NoError(t, err)
	assert.NotEqual(t, first.Rev, second.Rev)

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(loaded.Data))
}

func TestSQLite_SequentialSaves(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rev := ""
	for i := 0; i < 5; i++ {
		doc, err := store.Save(ctx, json.RawMessage(`{"i":1}`), rev)
		require.NoError(t, err)
		rev = doc.Rev
	}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rev, loaded.Rev)
}
