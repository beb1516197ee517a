package gridsig

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gridsig/resource"
)

var (
	// ErrGridTooSmall is returned when a grid has no interior cells.
	ErrGridTooSmall = errors.New("grid must be at least 3x3")

	// ErrInvalidDimensions is returned for negative or overflowing sizes. The
	// shape and length mismatch errors unwrap to it.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrGridTooLarge is returned when flat cell indices do not fit in 32 bits.
	ErrGridTooLarge = errors.New("grid too large")

	// ErrNilGrid is returned when a nil grid or surface is passed.
	ErrNilGrid = errors.New("nil grid")

	// ErrMemoryLimitExceeded is returned when a walk would exceed the
	// configured memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// Shape is the width and height of a grid or surface.
type Shape struct {
	Width  int
	Height int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ErrShapeMismatch indicates two grids or surfaces that must agree in shape
// do not.
type ErrShapeMismatch struct {
	Expected Shape
	Actual   Shape
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e *ErrShapeMismatch) Unwrap() error {
	return ErrInvalidDimensions
}

// ErrLengthMismatch indicates a flat buffer whose length is not width*height.
type ErrLengthMismatch struct {
	Shape  Shape
	Length int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("buffer length %d does not match %s grid", e.Length, e.Shape)
}

func (e *ErrLengthMismatch) Unwrap() error {
	return ErrInvalidDimensions
}
