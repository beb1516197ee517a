package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/gridsig/blobstore"
)

// Client is the subset of *s3.Client used by Store. It is satisfied by
// *s3.Client and by test doubles.
type Client interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ Client = (*s3.Client)(nil)

// s3Blob implements blobstore.Blob with ranged GETs.
type s3Blob struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (b *s3Blob) Close() error {
	return nil
}

func (b *s3Blob) Size() int64 {
	return b.size
}

// ReadAt reads len(p) bytes starting at offset off.
func (b *s3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	end := min(off+int64(len(p)), b.size) - 1

	resp, err := b.get(ctx, off, end)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Close() }()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp, p[:want])
	if err != nil {
		return n, err
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ReadRange returns a reader for a range of bytes.
func (b *s3Blob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.size || length <= 0 {
		return io.NopCloser(strings.NewReader("")), nil
	}
	end := min(off+length, b.size) - 1
	return b.get(ctx, off, end)
}

func (b *s3Blob) get(ctx context.Context, off, end int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return resp.Body, nil
}

// listObjects is a shared helper for listing S3 objects.
func listObjects(ctx context.Context, client Client, bucket, fullPrefix, rootPrefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(fullPrefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			relPath := aws.ToString(obj.Key)
			if rootPrefix != "" {
				relPath = strings.TrimPrefix(relPath, rootPrefix)
				relPath = strings.TrimPrefix(relPath, "/")
			}
			if relPath != "" {
				keys = append(keys, relPath)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// openBlob is a shared helper for opening S3 blobs.
func openBlob(ctx context.Context, client Client, bucket, key string) (*s3Blob, error) {
	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &s3Blob{
		client: client,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

func mapNotFound(err error) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return blobstore.ErrNotFound
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	return err
}
