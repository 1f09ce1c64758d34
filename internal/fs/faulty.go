package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error surfaced by FaultyFS faults.
var ErrInjected = errors.New("injected fault")

// Fault defines specific failure behavior for matching files.
type Fault struct {
	FailOnWrite    bool
	FailOnTruncate bool
	FailOnSync     bool
	Err            error // defaults to ErrInjected
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS is a FileSystem wrapper that injects errors into file
// operations. Rules match on substrings of the file name; the last added
// matching rule wins.
type FaultyFS struct {
	FS FileSystem

	mu    sync.Mutex
	rules []rule
}

type rule struct {
	pattern string
	fault   Fault
}

// NewFaultyFS creates a FaultyFS wrapping fsys (or Default if nil).
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{FS: fsys}
}

// AddRule registers a fault for files whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{pattern: pattern, fault: fault})
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	var fault Fault
	for _, r := range f.rules {
		if strings.Contains(name, r.pattern) {
			fault = r.fault
		}
	}
	f.mu.Unlock()

	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) { return f.FS.Stat(name) }
func (f *FaultyFS) Remove(name string) error              { return f.FS.Remove(name) }

type faultyFile struct {
	File
	fault Fault
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailOnWrite {
		return 0, ff.fault.err()
	}
	return ff.File.Write(p)
}

func (ff *faultyFile) Truncate(size int64) error {
	if ff.fault.FailOnTruncate {
		return ff.fault.err()
	}
	return ff.File.Truncate(size)
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}
