package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInjected is returned by FaultyFS when no rule error is set.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail writes after this many bytes written to one file. -1 to disable.
	FailOnSync     bool
	FailOnClose    bool
	FailOnRename   bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS is a FileSystem wrapper that can inject errors.
type FaultyFS struct {
	FS    FileSystem
	mu    sync.Mutex
	rules map[string]Fault // substring of the target name -> fault
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{
		FS:    fs,
		rules: make(map[string]Fault),
	}
}

// AddRule injects fault into every file whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

func (f *FaultyFS) match(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			return rule, true
		}
	}
	return Fault{FailAfterBytes: -1}, false
}

func (f *FaultyFS) CreateTemp(dir, pattern string) (File, error) {
	file, err := f.FS.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	fault, _ := f.match(filepath.Join(dir, pattern))
	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault, ok := f.match(newpath); ok && fault.FailOnRename {
		return fault.err()
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Remove(name string) error {
	return f.FS.Remove(name)
}

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

type faultyFile struct {
	File
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailAfterBytes >= 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		return 0, ff.fault.err()
	}
	n, err := ff.File.Write(p)
	ff.written += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}
	return ff.File.Close()
}
