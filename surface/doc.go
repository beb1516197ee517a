// Package surface stores grids and signature surfaces as self-describing
// binary blobs.
//
// # File Format
//
// Every file starts with a fixed 36-byte little-endian header:
//
//	offset size field
//	0      4    magic "GSIG"
//	4      1    version (1)
//	5      1    kind (1 = grid, 2 = signatures)
//	6      1    compression (0 = none, 1 = lz4, 2 = zstd)
//	7      1    reserved (0)
//	8      4    width
//	12     4    height
//	16     8    seed (0 for grids)
//	24     4    raw payload length
//	28     4    stored payload length
//	32     4    CRC32C (Castagnoli) of the stored payload
//
// The payload holds width*height little-endian uint32 samples or uint64
// signatures in row-major order. When compression does not shrink the
// payload by at least 10% it is stored raw and the header says so.
//
// # Storage
//
// Store names surface files inside any blobstore.BlobStore (local disk,
// memory, S3 or MinIO) and throttles transfers through an optional
// resource.Controller.
package surface
