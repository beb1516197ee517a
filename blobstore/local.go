package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	ifs "github.com/hupe1980/gridsig/internal/fs"
	"github.com/hupe1980/gridsig/internal/mmap"
)

const tempSuffix = ".tmp"

// LocalStore implements BlobStore using the local file system.
//
// Blobs are written to a temporary file, synced and renamed into place, so
// readers never observe a partial blob.
type LocalStore struct {
	root string
	fs   ifs.FileSystem
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithFileSystem replaces the filesystem used for writes.
func WithFileSystem(fsys ifs.FileSystem) LocalOption {
	return func(s *LocalStore) {
		s.fs = fsys
	}
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string, opts ...LocalOption) *LocalStore {
	s := &LocalStore{root: root, fs: ifs.Default}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the directory the store is rooted at.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens a blob for reading. Local blobs are memory-mapped.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mmap.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Create creates a blob for streaming writes.
func (s *LocalStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := s.path(name)
	if err := s.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}
	f, err := s.fs.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*"+tempSuffix)
	if err != nil {
		return nil, err
	}
	return &localWritableBlob{f: f, fs: s.fs, target: target}, nil
}

// Put writes a blob atomically.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Abort()
		return err
	}
	return w.Close()
}

// Delete removes a blob.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.fs.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns all blobs matching the prefix. Names use forward slashes.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && p == s.root {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, tempSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	return b.m.ReadAt(p, off)
}

func (b *localBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := b.m.Bytes()
	if off < 0 || length < 0 {
		return nil, mmap.ErrInvalidOffset
	}
	if off >= int64(len(data)) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	end := min(off+length, int64(len(data)))
	return io.NopCloser(bytes.NewReader(data[off:end])), nil
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Bytes() ([]byte, error) {
	data := b.m.Bytes()
	if data == nil && b.m.Size() > 0 {
		return nil, mmap.ErrClosed
	}
	return data, nil
}

type localWritableBlob struct {
	f      ifs.File
	fs     ifs.FileSystem
	target string
	closed atomic.Bool
}

func (w *localWritableBlob) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, os.ErrClosed
	}
	return w.f.Write(p)
}

func (w *localWritableBlob) Sync() error {
	return w.f.Sync()
}

// Close syncs the temporary file and renames it over the target.
func (w *localWritableBlob) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return os.ErrClosed
	}
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		_ = w.fs.Remove(w.f.Name())
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = w.fs.Remove(w.f.Name())
		return err
	}
	if err := w.fs.Rename(w.f.Name(), w.target); err != nil {
		_ = w.fs.Remove(w.f.Name())
		return err
	}
	return nil
}

// Abort removes the temporary file without touching the target.
func (w *localWritableBlob) Abort() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	_ = w.f.Close()
	return w.fs.Remove(w.f.Name())
}
