// Package blobstore provides storage abstraction for stable vector snapshots.
//
// BlobStore is the interface for writing and reading whole snapshot blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral use
//   - LocalStore: local filesystem with atomic rename-on-write
//   - minio.Store: MinIO and other S3-compatible storage
//   - s3.Store: Amazon S3 with multipart uploads and CRC32C checksums
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error         // Atomic write
//	    Get(ctx, name) ([]byte, error)     // Whole-blob read
//	    Delete(ctx, name) error            // Idempotent
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
