package mmap

import "errors"

// AccessPattern tells the kernel how a mapping is going to be read.
type AccessPattern int

const (
	// AccessNormal restores the kernel's default read-ahead.
	AccessNormal AccessPattern = iota
	// AccessSequential fits raw grids, which a walk reads top to bottom once.
	AccessSequential
	// AccessRandom fits point lookups into a stored surface.
	AccessRandom
)

// Errors returned by Mapping.
var (
	ErrClosed        = errors.New("mmap: mapping is closed")
	ErrInvalidSize   = errors.New("mmap: file too large to map")
	ErrOutOfBounds   = errors.New("mmap: view extends past the mapping")
	ErrInvalidOffset = errors.New("mmap: negative offset")
)
