package main

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/gridsig/blobstore"
	minioblob "github.com/hupe1980/gridsig/blobstore/minio"
	s3blob "github.com/hupe1980/gridsig/blobstore/s3"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

// storeLocation is a parsed store URL.
type storeLocation struct {
	scheme   string // local, mem, s3, minio
	endpoint string // minio only
	bucket   string
	prefix   string
	dir      string // local only
}

// parseStoreURL accepts
//
//	local:DIR | DIR
//	mem:
//	s3://bucket[/prefix]
//	minio://endpoint/bucket[/prefix]
func parseStoreURL(raw string) (storeLocation, error) {
	switch {
	case raw == "mem:":
		return storeLocation{scheme: "mem"}, nil

	case strings.HasPrefix(raw, "s3://"):
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(raw, "s3://"), "/")
		if bucket == "" {
			return storeLocation{}, fmt.Errorf("store %q: missing bucket", raw)
		}
		return storeLocation{scheme: "s3", bucket: bucket, prefix: prefix}, nil

	case strings.HasPrefix(raw, "minio://"):
		parts := strings.SplitN(strings.TrimPrefix(raw, "minio://"), "/", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return storeLocation{}, fmt.Errorf("store %q: want minio://endpoint/bucket[/prefix]", raw)
		}
		loc := storeLocation{scheme: "minio", endpoint: parts[0], bucket: parts[1]}
		if len(parts) == 3 {
			loc.prefix = parts[2]
		}
		return loc, nil

	case strings.Contains(raw, "://"):
		return storeLocation{}, fmt.Errorf("store %q: unsupported scheme", raw)

	default:
		dir := strings.TrimPrefix(raw, "local:")
		if dir == "" {
			dir = "."
		}
		return storeLocation{scheme: "local", dir: dir}, nil
	}
}

// openBlobStore connects to the store described by cfg.
func openBlobStore(ctx context.Context, cfg StoreConfig) (blobstore.BlobStore, error) {
	loc, err := parseStoreURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	switch loc.scheme {
	case "mem":
		return blobstore.NewMemoryStore(), nil

	case "s3":
		opts := []func(*awsconfig.LoadOptions) error{}
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		if cfg.AccessKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				awscreds.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
			o.UsePathStyle = cfg.PathStyle
		})
		return s3blob.NewStore(client, loc.bucket, loc.prefix), nil

	case "minio":
		client, err := minio.New(loc.endpoint, &minio.Options{
			Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.Secure,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, loc.bucket, loc.prefix), nil

	default:
		return blobstore.NewLocalStore(loc.dir), nil
	}
}
