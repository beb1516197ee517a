// Package fs abstracts the filesystem writes made by blobstore.LocalStore so
// tests can inject I/O failures.
//
//   - [LocalFS]: production implementation on top of package os
//   - [FaultyFS]: wrapper that fails writes, syncs, closes or renames on demand
//
// Reads go through internal/mmap and are not covered here.
package fs
