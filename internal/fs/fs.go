package fs

import (
	"io"
	"os"
)

// File is a file opened for writing.
type File interface {
	io.WriteCloser
	Name() string
	Sync() error
}

// FileSystem abstracts the write path of a local blob store.
type FileSystem interface {
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) CreateTemp(dir, pattern string) (File, error) {
	return os.CreateTemp(dir, pattern)
}

func (LocalFS) Rename(oldpath, newpath string) error         { return os.Rename(oldpath, newpath) }
func (LocalFS) Remove(name string) error                     { return os.Remove(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Default is the default local file system.
var Default FileSystem = LocalFS{}
