package blobstore

import (
	"context"
	"errors"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for blob names that do not denote a location
// inside the store, such as "../x" or absolute paths.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// BlobStore is an abstraction for storing immutable snapshot blobs.
type BlobStore interface {
	// Put writes a blob atomically. Readers observe either the old or the new
	// content, never a partial write.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole blob. It returns ErrNotFound if the blob does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix in
	// lexicographic order.
	List(ctx context.Context, prefix string) ([]string, error)
}
