package mmap

import (
	"encoding/binary"
	"io"
	"os"
	"sync/atomic"
	"unsafe"
)

// Mapping represents a memory-mapped file.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// Open maps the file at path into memory.
// The file is mapped as read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{data: nil, size: 0}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}

	data, unmapFunc, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:  data,
		size:  int(size),
		unmap: unmapFunc,
	}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the underlying byte slice.
// The slice is valid only until Close() is called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Uint32s returns count little-endian uint32 values starting at byte offset
// off. On little-endian hosts with a 4-byte aligned offset the result aliases
// the mapping and is valid only until Close; otherwise it is a decoded copy.
func (m *Mapping) Uint32s(off, count int) ([]uint32, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 {
		return nil, ErrInvalidOffset
	}
	if count < 0 || count > (len(m.data)-off)/4 {
		return nil, ErrOutOfBounds
	}
	if count == 0 {
		return []uint32{}, nil
	}

	b := m.data[off : off+count*4]
	if littleEndian && uintptr(unsafe.Pointer(&b[0]))%4 == 0 {
		return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), count), nil
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

var littleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()
