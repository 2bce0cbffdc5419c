package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreLifecycle(t *testing.T, store BlobStore) {
	t.Helper()

	ctx := t.Context()

	require.NoError(t, store.Put(ctx, "snap/000001.svs", []byte("one")))
	require.NoError(t, store.Put(ctx, "snap/000002.svs", []byte("two")))
	require.NoError(t, store.Put(ctx, "other.svs", []byte("x")))

	data, err := store.Get(ctx, "snap/000001.svs")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	// Overwrite replaces the whole blob.
	require.NoError(t, store.Put(ctx, "snap/000001.svs", []byte("uno")))
	data, err = store.Get(ctx, "snap/000001.svs")
	require.NoError(t, err)
	assert.Equal(t, "uno", string(data))

	names, err := store.List(ctx, "snap/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snap/000001.svs", "snap/000002.svs"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"other.svs", "snap/000001.svs", "snap/000002.svs"}, all)

	require.NoError(t, store.Delete(ctx, "snap/000001.svs"))
	require.NoError(t, store.Delete(ctx, "snap/000001.svs"), "delete is idempotent")

	_, err = store.Get(ctx, "snap/000001.svs")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestLocalStore_Lifecycle(t *testing.T) {
	testStoreLifecycle(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStore_CopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := t.Context()

	buf := []byte("abc")
	require.NoError(t, store.Put(ctx, "b", buf))
	buf[0] = 'z'

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestLocalStore_ListSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := t.Context()

	require.NoError(t, store.Put(ctx, "a.svs", []byte("a")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-b.svs-123"), []byte("partial"), 0o600))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.svs"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStores_HonorCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	for _, store := range []BlobStore{NewMemoryStore(), NewLocalStore(t.TempDir())} {
		assert.ErrorIs(t, store.Put(ctx, "a", nil), context.Canceled)
		_, err := store.Get(ctx, "a")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, store.Delete(ctx, "a"), context.Canceled)
	}
}

func TestLocalStore_RejectsNamesOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	store := NewLocalStore(root)
	ctx := t.Context()

	for _, name := range []string{"../x", "a/../../x", "/etc/passwd", "", ".."} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), ErrInvalidName)
			_, err := store.Get(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName)
		})
	}

	_, err := os.Stat(filepath.Join(parent, "x"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Names that stay inside root after cleaning are fine.
	require.NoError(t, store.Put(ctx, "a/../b.svs", []byte("b")))
	got, err := store.Get(ctx, "b.svs")
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}
