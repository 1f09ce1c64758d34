// Package mmap provides the memory-mapping primitive used by mmapfile:
// given an open file, a byte offset, and a length, it returns a byte slice
// aliasing that range of the file.
//
// Mapping primitives require the offset to be aligned to the host page
// size (allocation granularity on Windows). The requested offset is rounded
// down to the nearest legal boundary internally and the returned window
// sliced forward, so callers see exactly the bytes they asked for
// regardless of the host's alignment rules.
package mmap

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeOffset = errors.New("mmap: negative offset")
	ErrNegativeLength = errors.New("mmap: negative length")
)

// File is the part of an open file the mapper needs.
type File interface {
	Fd() uintptr
}

// Options selects the permission and sharing mode of a mapping.
type Options struct {
	// Write maps the region read-write instead of read-only.
	Write bool
	// Private makes the mapping copy-on-write: writes are visible through
	// this mapping only and are never carried back to the file or to other
	// mappers.
	Private bool
}

// Region is a mapped window of a file. Data aliases the file bytes
// directly; it becomes invalid once Close is called.
type Region struct {
	Data []byte

	full    []byte // page-aligned mapping that Data was sliced from
	private bool
}

// Map maps length bytes of f starting at offset. A zero length yields an
// empty Region backed by no mapping; Close and Sync on it are no-ops.
func Map(f File, offset int64, length int, opts Options) (*Region, error) {
	if offset < 0 {
		return nil, ErrNegativeOffset
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}
	if length == 0 {
		return &Region{private: opts.Private}, nil
	}

	adjust := offset % mapAlignment()

	full, err := mmap(f.Fd(), offset-adjust, length+int(adjust), opts)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d bytes at offset %d: %w", length, offset, err)
	}

	return &Region{
		Data:    full[adjust:],
		full:    full,
		private: opts.Private,
	}, nil
}

// Sync flushes modified pages back to the file. It is a no-op for empty
// and private mappings.
func (r *Region) Sync() error {
	if r == nil || r.full == nil || r.private {
		return nil
	}
	return msync(r.full)
}

// Close releases the mapping. The Data slice must not be used afterwards.
// Close is idempotent and nil-safe.
func (r *Region) Close() error {
	if r == nil {
		return nil
	}
	var err error
	if r.full != nil {
		err = munmap(r.full)
		r.full = nil
	}
	r.Data = nil
	return err
}
