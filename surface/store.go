package surface

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/gridsig"
	"github.com/hupe1980/gridsig/blobstore"
	"github.com/hupe1980/gridsig/resource"
)

// Store saves and loads surface files by name in a blob store.
type Store struct {
	blobs       blobstore.BlobStore
	compression Compression
	logger      *gridsig.Logger
	metrics     gridsig.MetricsCollector
	rc          *resource.Controller
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression sets the compression used by SaveGrid and SaveSignatures.
// The default is LZ4.
func WithCompression(c Compression) StoreOption {
	return func(s *Store) {
		s.compression = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *gridsig.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc gridsig.MetricsCollector) StoreOption {
	return func(s *Store) {
		if mc != nil {
			s.metrics = mc
		}
	}
}

// WithResourceController throttles transfers with rc's IO limit.
func WithResourceController(rc *resource.Controller) StoreOption {
	return func(s *Store) {
		s.rc = rc
	}
}

// NewStore creates a Store on top of blobs.
func NewStore(blobs blobstore.BlobStore, opts ...StoreOption) *Store {
	s := &Store{
		blobs:       blobs,
		compression: CompressionLZ4,
		logger:      gridsig.NoopLogger(),
		metrics:     gridsig.NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveGrid encodes and stores g under name.
func (s *Store) SaveGrid(ctx context.Context, name string, g *gridsig.Grid) error {
	data, err := EncodeGrid(g, s.compression)
	if err != nil {
		return err
	}
	return s.Save(ctx, name, data)
}

// SaveSignatures encodes and stores sigs under name.
func (s *Store) SaveSignatures(ctx context.Context, name string, sigs *gridsig.Signatures) error {
	data, err := EncodeSignatures(sigs, s.compression)
	if err != nil {
		return err
	}
	return s.Save(ctx, name, data)
}

// Save stores an already encoded surface file under name. The write only
// becomes visible once it has completed.
func (s *Store) Save(ctx context.Context, name string, data []byte) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordStore("save", len(data), time.Since(start), err)
		s.logger.LogStore(ctx, "save", name, len(data), err)
	}()

	if s.rc == nil {
		return s.blobs.Put(ctx, name, data)
	}

	w, err := s.blobs.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(resource.NewRateLimitedWriter(ctx, w, s.rc), bytes.NewReader(data)); err != nil {
		_ = w.Abort()
		return err
	}
	return w.Close()
}

// Load reads and decodes the surface file stored under name.
func (s *Store) Load(ctx context.Context, name string) (f *File, err error) {
	start := time.Now()
	var size int
	defer func() {
		s.metrics.RecordStore("load", size, time.Since(start), err)
		s.logger.LogStore(ctx, "load", name, size, err)
	}()

	data, err := s.read(ctx, name)
	if err != nil {
		return nil, err
	}
	size = len(data)

	f, err = Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// LoadGrid loads a grid stored under name.
func (s *Store) LoadGrid(ctx context.Context, name string) (*gridsig.Grid, error) {
	f, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return f.Grid()
}

// LoadSignatures loads a signature surface stored under name.
func (s *Store) LoadSignatures(ctx context.Context, name string) (*gridsig.Signatures, error) {
	f, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return f.Signatures()
}

// Stat reads only the header of the file stored under name.
func (s *Store) Stat(ctx context.Context, name string) (Header, error) {
	b, err := s.blobs.Open(ctx, name)
	if err != nil {
		return Header{}, err
	}
	defer b.Close()

	buf := make([]byte, HeaderSize)
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(err == io.EOF && n == HeaderSize) {
		if err == io.EOF {
			return Header{}, corruptf("file is %d bytes, shorter than header", n)
		}
		return Header{}, err
	}
	h, err := ReadHeader(buf)
	if err != nil {
		return Header{}, err
	}
	if int64(h.FileSize()) != b.Size() {
		return Header{}, corruptf("file is %d bytes, header says %d", b.Size(), h.FileSize())
	}
	return h, nil
}

// List returns the names of stored files with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return s.blobs.List(ctx, prefix)
}

// Delete removes the file stored under name.
func (s *Store) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordStore("delete", 0, time.Since(start), err)
		s.logger.LogStore(ctx, "delete", name, 0, err)
	}()
	return s.blobs.Delete(ctx, name)
}

func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	b, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if s.rc == nil {
		return blobstore.ReadAll(ctx, b)
	}

	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data := make([]byte, b.Size())
	if _, err := io.ReadFull(resource.NewRateLimitedReader(ctx, rc, s.rc), data); err != nil {
		return nil, err
	}
	return data, nil
}
