package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/gridsig/internal/hash"
)

// UploadConfig controls how surfaces are written to S3.
type UploadConfig struct {
	// PartSize is the multipart part size. Blobs smaller than one part are
	// sent with a single PutObject. Default: 8MB.
	PartSize int64

	// Concurrency is the number of parts uploaded in parallel. Default: 5.
	Concurrency int

	// Checksum attaches a CRC32C checksum that S3 verifies on receipt.
	// Default: true.
	Checksum bool
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 << 20,
		Concurrency: 5,
		Checksum:    true,
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
	})
}

// putObject sends data in one request.
func putObject(ctx context.Context, client Client, bucket, key string, data []byte, checksum bool) error {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if checksum {
		in.ChecksumCRC32C = aws.String(hash.Base64CRC32C(data))
	}
	_, err := client.PutObject(ctx, in)
	return err
}

var errUploadAborted = errors.New("s3: upload aborted")

// uploadWriter feeds a background multipart upload through a pipe. The
// object exists once Close returns nil.
type uploadWriter struct {
	pw   *io.PipeWriter
	done chan error

	once sync.Once
	err  error
}

func startUpload(ctx context.Context, uploader *manager.Uploader, bucket, key string, checksum bool) *uploadWriter {
	pr, pw := io.Pipe()
	w := &uploadWriter{pw: pw, done: make(chan error, 1)}

	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   pr,
	}
	if checksum {
		in.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	go func() {
		_, err := uploader.Upload(ctx, in)
		// Unblock a writer stuck on a failed upload.
		_ = pr.CloseWithError(err)
		w.done <- err
	}()
	return w
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

// Close finishes the upload and returns its result. Later calls return the
// same result.
func (w *uploadWriter) Close() error {
	w.once.Do(func() {
		_ = w.pw.Close()
		w.err = <-w.done
	})
	return w.err
}

// Abort fails the upload so that no object is created. The uploader aborts
// any multipart upload it has started.
func (w *uploadWriter) Abort() error {
	w.once.Do(func() {
		_ = w.pw.CloseWithError(errUploadAborted)
		<-w.done
		w.err = errUploadAborted
	})
	return nil
}

// Sync is a no-op; nothing is visible before Close.
func (w *uploadWriter) Sync() error {
	return nil
}
