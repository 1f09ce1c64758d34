// Package fs abstracts the filesystem operations mmapfile performs, so
// tests can substitute a failing implementation.
//
// Production code uses [Default] (backed by the os package); tests inject
// [FaultyFS] to exercise I/O error paths.
package fs

import (
	"io"
	"os"
)

// File represents an open file. Fd exposes the descriptor for mapping;
// Truncate sets the file's length during array creation.
type File interface {
	io.ReadWriteCloser
	io.ReaderAt
	Sync() error
	Stat() (os.FileInfo, error)
	Truncate(size int64) error
	Fd() uintptr
}

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Stat(name string) (os.FileInfo, error)
	Remove(name string) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (LocalFS) Remove(name string) error              { return os.Remove(name) }

// Default is the default local file system.
var Default FileSystem = LocalFS{}
