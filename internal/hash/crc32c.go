package hash

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Base64CRC32C returns the checksum of data in the form object stores carry
// it in headers: base64 of the big-endian sum.
func Base64CRC32C(data []byte) string {
	return base64.StdEncoding.EncodeToString(binary.BigEndian.AppendUint32(nil, CRC32C(data)))
}

// MismatchError reports a payload whose checksum differs from the recorded one.
type MismatchError struct {
	Got, Want uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("crc32c %08x, want %08x", e.Got, e.Want)
}

// Verify checks data against a recorded checksum.
func Verify(data []byte, want uint32) error {
	if got := CRC32C(data); got != want {
		return &MismatchError{Got: got, Want: want}
	}
	return nil
}
