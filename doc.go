// Package gridsig computes deterministic 64-bit neighborhood signatures for
// every interior cell of a 2D grid of uint32 samples.
//
// A signature identifies a cell's 3x3 neighborhood under a seed. Two cells
// with the same neighborhood and seed always get the same signature; changing
// any of the nine samples, their positions, or the seed changes it with
// overwhelming probability. Signatures are not cryptographic.
//
// # Quick Start
//
// Raw, allocation-free form over caller-owned buffers:
//
//	src := make([]uint32, w*h) // row-major samples
//	dst := make([]uint64, w*h) // zero-filled; border cells stay zero
//	gridsig.Compute(src, dst, w, h, gridsig.DefaultSeed)
//
// Bounds-checked form with parallel rows and cancellation:
//
//	g, _ := gridsig.GridFrom(src, w, h)
//	walker := gridsig.NewWalker(gridsig.WithWorkers(8))
//	sigs, err := walker.Walk(ctx, g, gridsig.DefaultSeed)
//
// # Border Cells
//
// Cells in the first and last row and column have no full neighborhood and
// are never written. Compute leaves whatever the caller's buffer held;
// Walk allocates a zeroed surface, so borders read as 0 unless WithBorder
// selects another value. To sign every cell of a region, surround it with
// its neighbors' edges first (see Pad and Walker.WalkPadded).
//
// # Change Detection
//
// Diff compares two surfaces of the same shape and returns the set of
// interior cells whose signatures differ. A single changed sample marks at
// most the nine interior cells whose neighborhoods contain it.
//
// # Memoization
//
// Memo caches an expensive per-neighborhood result keyed by signature, so
// identical neighborhoods are resolved once per surface.
//
// # Compatibility
//
// The mixing constants and the neighborhood order are part of the format.
// Any other implementation using them (including the C ABI exported by
// cmd/libgridsig) produces bit-identical signatures.
package gridsig
