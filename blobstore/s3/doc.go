// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-1"))
//	client := awss3.NewFromConfig(cfg)
//	store := s3.NewStore(client, "my-bucket", "surfaces/")
//
//	surfaces := surface.NewStore(store)
//
// # Features
//
//   - Range reads for partial fetches
//   - CRC32C-checked single requests for small blobs
//   - Multipart uploads for large blobs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
