// Package mmap provides read-only memory-mapped file access.
//
// gridsig maps raw sample grids and stored surfaces instead of reading them
// into the heap, so a multi-gigabyte grid costs page cache, not Go memory.
//
// # Usage
//
//	m, err := mmap.Open("grid.raw")
//	if err != nil { ... }
//	defer m.Close()
//
//	samples, err := m.Uint32s(0, width*height)
//	if err != nil { ... }
//
//	// Walk rows in order; tell the kernel.
//	_ = m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
package mmap
