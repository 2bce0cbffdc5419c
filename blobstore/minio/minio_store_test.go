package minio

import (
	"testing"

	"github.com/hupe1980/stablevec/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "graphs/")
	assert.Equal(t, "graphs/nodes/000001.svs", s.key("nodes/000001.svs"))

	s = NewStore(nil, "bucket", "graphs")
	assert.Equal(t, "graphs/nodes", s.key("nodes"))

	s = NewStore(nil, "bucket", "")
	assert.Equal(t, "nodes", s.key("/nodes"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-stablevec"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := t.Context()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "snap/test.svs", data))

	got, err := store.Get(ctx, "snap/test.svs")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "snap/")
	require.NoError(t, err)
	assert.Contains(t, names, "snap/test.svs")

	require.NoError(t, store.Delete(ctx, "snap/test.svs"))

	_, err = store.Get(ctx, "snap/test.svs")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
