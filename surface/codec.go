package surface

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/gridsig"
	"github.com/hupe1980/gridsig/internal/hash"
)

const (
	// Version is the format version written by this package.
	Version = 1

	// HeaderSize is the size of the fixed file header in bytes.
	HeaderSize = 36

	magic = "GSIG"
)

// Kind identifies what a surface file holds.
type Kind uint8

const (
	// KindGrid is a grid of uint32 samples.
	KindGrid Kind = 1
	// KindSignatures is a surface of uint64 signatures.
	KindSignatures Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindSignatures:
		return "signatures"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) elemSize() int {
	if k == KindGrid {
		return 4
	}
	return 8
}

// Header describes a surface file without its payload.
type Header struct {
	Version     uint8
	Kind        Kind
	Compression Compression
	Width       int
	Height      int
	Seed        uint64
	RawLen      int
	PayloadLen  int
	Checksum    uint32
}

// Shape returns the surface's dimensions.
func (h Header) Shape() gridsig.Shape {
	return gridsig.Shape{Width: h.Width, Height: h.Height}
}

// FileSize returns the total encoded size.
func (h Header) FileSize() int {
	return HeaderSize + h.PayloadLen
}

func (h Header) marshal(dst []byte) {
	copy(dst[0:4], magic)
	dst[4] = h.Version
	dst[5] = byte(h.Kind)
	dst[6] = byte(h.Compression)
	dst[7] = 0
	binary.LittleEndian.PutUint32(dst[8:], uint32(h.Width))
	binary.LittleEndian.PutUint32(dst[12:], uint32(h.Height))
	binary.LittleEndian.PutUint64(dst[16:], h.Seed)
	binary.LittleEndian.PutUint32(dst[24:], uint32(h.RawLen))
	binary.LittleEndian.PutUint32(dst[28:], uint32(h.PayloadLen))
	binary.LittleEndian.PutUint32(dst[32:], h.Checksum)
}

// ReadHeader parses and validates the header at the start of data. Only the
// first HeaderSize bytes are required.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, corruptf("file is %d bytes, shorter than header", len(data))
	}
	if string(data[0:4]) != magic {
		return Header{}, corruptf("bad magic %q", data[0:4])
	}

	h := Header{
		Version:     data[4],
		Kind:        Kind(data[5]),
		Compression: Compression(data[6]),
		Width:       int(binary.LittleEndian.Uint32(data[8:])),
		Height:      int(binary.LittleEndian.Uint32(data[12:])),
		Seed:        binary.LittleEndian.Uint64(data[16:]),
		RawLen:      int(binary.LittleEndian.Uint32(data[24:])),
		PayloadLen:  int(binary.LittleEndian.Uint32(data[28:])),
		Checksum:    binary.LittleEndian.Uint32(data[32:]),
	}

	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Kind != KindGrid && h.Kind != KindSignatures {
		return Header{}, corruptf("unknown kind %d", data[5])
	}
	if h.Compression > CompressionZSTD {
		return Header{}, corruptf("unknown compression %d", data[6])
	}
	if uint64(h.Width)*uint64(h.Height)*uint64(h.Kind.elemSize()) != uint64(h.RawLen) {
		return Header{}, corruptf("%dx%d %s needs %d bytes, header says %d",
			h.Width, h.Height, h.Kind, h.Width*h.Height*h.Kind.elemSize(), h.RawLen)
	}
	return h, nil
}

// File is a decoded surface file.
type File struct {
	Header
	raw []byte
}

// Grid returns the samples of a grid file.
func (f *File) Grid() (*gridsig.Grid, error) {
	if f.Kind != KindGrid {
		return nil, &ErrKindMismatch{Want: KindGrid, Got: f.Kind}
	}
	samples := make([]uint32, f.Width*f.Height)
	for i := range samples {
		samples[i] = binary.LittleEndian.Uint32(f.raw[i*4:])
	}
	return gridsig.GridFrom(samples, f.Width, f.Height)
}

// Signatures returns the values of a signature file.
func (f *File) Signatures() (*gridsig.Signatures, error) {
	if f.Kind != KindSignatures {
		return nil, &ErrKindMismatch{Want: KindSignatures, Got: f.Kind}
	}
	values := make([]uint64, f.Width*f.Height)
	for i := range values {
		values[i] = binary.LittleEndian.Uint64(f.raw[i*8:])
	}
	return gridsig.SignaturesFrom(values, f.Width, f.Height, f.Seed)
}

// EncodeGrid encodes g with the given compression.
func EncodeGrid(g *gridsig.Grid, c Compression) ([]byte, error) {
	if g == nil {
		return nil, gridsig.ErrNilGrid
	}
	if len(g.Samples) != g.Width*g.Height {
		return nil, &gridsig.ErrLengthMismatch{Shape: g.Shape(), Length: len(g.Samples)}
	}
	if len(g.Samples) > math.MaxUint32/4 {
		return nil, ErrTooLarge
	}

	raw := make([]byte, len(g.Samples)*4)
	for i, v := range g.Samples {
		binary.LittleEndian.PutUint32(raw[i*4:], v)
	}
	return encode(Header{Kind: KindGrid, Width: g.Width, Height: g.Height}, raw, c)
}

// EncodeSignatures encodes s with the given compression. The surface's seed
// is stored in the header.
func EncodeSignatures(s *gridsig.Signatures, c Compression) ([]byte, error) {
	if s == nil {
		return nil, gridsig.ErrNilGrid
	}
	if len(s.Values) != s.Width*s.Height {
		return nil, &gridsig.ErrLengthMismatch{Shape: s.Shape(), Length: len(s.Values)}
	}
	if len(s.Values) > math.MaxUint32/8 {
		return nil, ErrTooLarge
	}

	raw := make([]byte, len(s.Values)*8)
	for i, v := range s.Values {
		binary.LittleEndian.PutUint64(raw[i*8:], v)
	}
	return encode(Header{Kind: KindSignatures, Width: s.Width, Height: s.Height, Seed: s.Seed}, raw, c)
}

func encode(h Header, raw []byte, c Compression) ([]byte, error) {
	if uint64(h.Width) > math.MaxUint32 || uint64(h.Height) > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	payload, used, err := compress(raw, c)
	if err != nil {
		return nil, err
	}

	h.Version = Version
	h.Compression = used
	h.RawLen = len(raw)
	h.PayloadLen = len(payload)
	h.Checksum = hash.CRC32C(payload)

	out := make([]byte, HeaderSize+len(payload))
	h.marshal(out)
	copy(out[HeaderSize:], payload)
	return out, nil
}

// Decode parses a surface file, verifying its checksum and decompressing
// the payload.
func Decode(data []byte) (*File, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	if len(data)-HeaderSize != h.PayloadLen {
		return nil, corruptf("payload is %d bytes, header says %d", len(data)-HeaderSize, h.PayloadLen)
	}

	payload := data[HeaderSize:]
	if err := hash.Verify(payload, h.Checksum); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChecksum, err)
	}

	raw, err := decompress(payload, h.Compression, h.RawLen)
	if err != nil {
		return nil, err
	}
	return &File{Header: h, raw: raw}, nil
}
