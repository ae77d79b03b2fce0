package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGetDelete(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Put("sites", []byte(`[{"id":"site1"}]`)))
	blob, ok := store.Get("sites")
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"site1"}]`, string(blob))

	require.NoError(t, store.Put("sites", []byte(`[]`)))
	blob, _ = store.Get("sites")
	assert.Equal(t, "[]", string(blob))

	require.NoError(t, store.Delete("sites"))
	_, ok = store.Get("sites")
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete("sites"))
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("cakes:site1", []byte(`[]`)))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	blob, ok := reopened.Get("cakes:site1")
	assert.True(t, ok)
	assert.Equal(t, "[]", string(blob))
}

func TestTenantKeysEmbedSiteID(t *testing.T) {
	assert.Equal(t, "cakes:site1", CakesKey("site1"))
	assert.Equal(t, "coupons:site1", CouponsKey("site1"))
	assert.Equal(t, "categories:site1", CategoriesKey("site1"))
}
