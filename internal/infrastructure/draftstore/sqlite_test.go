package draftstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGet_MissingKeyReturnsNil(t *testing.T) {
	store := openTestStore(t)

	payload, err := store.Get(context.Background(), "quote:wizard:draft")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestSetAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "quote:wizard:draft", []byte(`{"title":"a"}`)))

	payload, err := store.Get(ctx, "quote:wizard:draft")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"title":"a"}`), payload)
}

func TestSet_OverwritesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("first")))
	require.NoError(t, store.Set(ctx, "k", []byte("second")))

	payload, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), payload)
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	payload, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, payload)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestOpen_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", []byte("persisted")))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	payload, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), payload)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "drafts.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
}
