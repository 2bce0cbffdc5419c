// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("graphs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = snapshot.Save(ctx, store, snapshot.Name("nodes", 1), vec)
//
// # Features
//
//   - CRC32C integrity validation on every upload
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
