package s3

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/gridsig/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client   Client
	bucket   string
	prefix   string
	upload   UploadConfig
	uploader *manager.Uploader
}

var _ blobstore.BlobStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithUploadConfig replaces the default upload settings.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(s *Store) {
		s.upload = cfg
	}
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "surfaces/").
func NewStore(client Client, bucket, rootPrefix string, opts ...Option) *Store {
	if rootPrefix != "" && !strings.HasSuffix(rootPrefix, "/") {
		rootPrefix += "/"
	}
	s := &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
		upload: DefaultUploadConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.uploader = newUploader(client, s.upload)
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	return openBlob(ctx, s.client, s.bucket, s.key(name))
}

// Create starts a streaming upload. The upload runs under ctx.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return startUpload(ctx, s.uploader, s.bucket, s.key(name), s.upload.Checksum), nil
}

// Put writes a blob. Blobs below the part size go out in one request with a
// CRC32C checksum; larger blobs use a multipart upload.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key := s.key(name)
	if int64(len(data)) < s.upload.PartSize {
		return putObject(ctx, s.client, s.bucket, key, data, s.upload.Checksum)
	}
	w := startUpload(ctx, s.uploader, s.bucket, key, s.upload.Checksum)
	if _, err := w.Write(data); err != nil {
		_ = w.Abort()
		return err
	}
	return w.Close()
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return mapNotFoundDelete(err)
}

// List returns the names of all blobs with the given prefix, relative to
// the store's root prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.prefix + prefix
	return listObjects(ctx, s.client, s.bucket, fullPrefix, s.prefix)
}

func mapNotFoundDelete(err error) error {
	if err == nil || mapNotFound(err) == blobstore.ErrNotFound {
		return nil
	}
	return err
}
