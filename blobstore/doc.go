// Package blobstore provides storage abstraction for encoded grids and
// signature surfaces.
//
// BlobStore is the interface for reading and writing immutable data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap reads and atomic rename writes
//   - MemoryStore: In-process map, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Create(ctx, name) (WritableBlob, error)  // Create for writing
//	    Put(ctx, name, data) error               // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that live in memory can also implement Mappable so that ReadAll
// avoids a read round trip.
package blobstore
