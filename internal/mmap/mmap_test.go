package mmap

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.raw")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Mmap!")
	m, err := Open(writeTemp(t, content))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Mmap!", string(buf))

	n, err = m.ReadAt(make([]byte, 10), 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	buf3 := make([]byte, 10)
	n, err = m.ReadAt(buf3, 7)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)

	require.NoError(t, m.Advise(AccessSequential))
	require.NoError(t, m.Advise(AccessNormal))
}

func TestMapping_EmptyFile(t *testing.T) {
	m, err := Open(writeTemp(t, nil))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	got, err := m.Uint32s(0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMapping_Uint32s(t *testing.T) {
	raw := make([]byte, 4*16+2)
	for i := range 16 {
		binary.LittleEndian.PutUint32(raw[i*4:], uint32(i+1))
	}

	m, err := Open(writeTemp(t, raw))
	require.NoError(t, err)
	defer m.Close()

	got, err := m.Uint32s(0, 16)
	require.NoError(t, err)
	require.Len(t, got, 16)
	for i, v := range got {
		assert.Equal(t, uint32(i+1), v)
	}

	// Unaligned offset takes the copying path.
	raw2 := append([]byte{0xFF, 0xFF}, raw[:8]...)
	m2, err := Open(writeTemp(t, raw2))
	require.NoError(t, err)
	defer m2.Close()
	got, err = m2.Uint32s(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, got)

	_, err = m.Uint32s(0, 17)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = m.Uint32s(-4, 1)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestMapping_Closed(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("abcd")))
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	_, err = m.Uint32s(0, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
}
