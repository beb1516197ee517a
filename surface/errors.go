package surface

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is returned when a file is truncated or its header is invalid.
	ErrCorrupt = errors.New("surface: corrupt file")

	// ErrChecksum is returned when the payload does not match its CRC32C.
	ErrChecksum = errors.New("surface: checksum mismatch")

	// ErrUnsupportedVersion is returned for files written by a newer format.
	ErrUnsupportedVersion = errors.New("surface: unsupported version")

	// ErrTooLarge is returned when a payload does not fit the format's
	// 32-bit length fields.
	ErrTooLarge = errors.New("surface: payload too large")
)

// ErrKindMismatch is returned when a file holds a different kind of surface
// than the caller asked for.
type ErrKindMismatch struct {
	Want Kind
	Got  Kind
}

func (e *ErrKindMismatch) Error() string {
	return fmt.Sprintf("surface: file holds %s, not %s", e.Got, e.Want)
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
}
