package surface

import (
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("surface: unknown compression %q", s)
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress returns the compressed payload and the algorithm actually used.
// Payloads that do not shrink below 90% of their size are returned raw.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		out = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		out = enc.EncodeAll(raw, nil)
		putZstdEncoder(enc)
	default:
		return nil, 0, fmt.Errorf("surface: unknown compression %d", c)
	}

	// lz4 reports incompressible input as n == 0.
	if len(out) == 0 || float64(len(out)) > float64(len(raw))*0.9 {
		return raw, CompressionNone, nil
	}
	return out, c, nil
}

func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != rawLen {
			return nil, corruptf("raw payload is %d bytes, header says %d", len(payload), rawLen)
		}
		return payload, nil

	case CompressionLZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, corruptf("lz4: %v", err)
		}
		if n != rawLen {
			return nil, corruptf("decompressed size mismatch")
		}
		return out, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, corruptf("zstd: %v", err)
		}
		if len(out) != rawLen {
			return nil, corruptf("decompressed size mismatch")
		}
		return out, nil

	default:
		return nil, corruptf("unknown compression %d", c)
	}
}
