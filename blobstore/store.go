package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing immutable data blobs (encoded
// grids and signature surfaces).
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a blob for streaming writes. The blob becomes visible
	// when the writer is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader over length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a blob being written. Nothing is visible under the
// blob's name until Close returns nil.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes buffered data to durable storage where supported.
	Sync() error
	// Abort discards everything written so far. Any previous blob under the
	// same name is left in place. Abort after Close is a no-op.
	Abort() error
}

// Mappable is an optional interface for Blobs that support memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	// This is a zero-copy operation if supported.
	Bytes() ([]byte, error)
}

// ReadAll returns the full contents of b. The result never aliases the
// blob's memory and stays valid after b is closed.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	out := make([]byte, b.Size())
	if len(out) == 0 {
		return out, nil
	}
	n, err := b.ReadAt(ctx, out, 0)
	if err != nil && !(err == io.EOF && n == len(out)) {
		return nil, err
	}
	if n != len(out) {
		return nil, io.ErrUnexpectedEOF
	}
	return out, nil
}
