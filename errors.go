package mmapfile

import (
	"errors"
	"fmt"

	"github.com/kaspar030/mmapfile/internal/format"
)

var (
	// ErrBadMagic is returned by Open when the file does not start with
	// the mmapfile magic tag.
	ErrBadMagic = format.ErrBadMagic

	// ErrTruncated is returned by Open when the file ends inside the
	// header.
	ErrTruncated = format.ErrTruncated

	// ErrTooLarge is returned when the record data would exceed the
	// addressable size on this host.
	ErrTooLarge = errors.New("mmapfile: data region too large to map")

	// ErrClosed is returned by operations on a closed array.
	ErrClosed = errors.New("mmapfile: array is closed")
)

// ErrTypeMismatch indicates that the type identity stored in the file does
// not match the record type the caller requested.
type ErrTypeMismatch struct {
	Want string // tag of the requested record type
	Got  string // tag stored in the file header
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("mmapfile: type mismatch: file holds %q, requested %q", e.Got, e.Want)
}

// ErrCapacity indicates that the file is too small to hold the number of
// records its header declares.
type ErrCapacity struct {
	Need int64 // bytes the header and record count require
	Have int64 // actual file size
}

func (e *ErrCapacity) Error() string {
	return fmt.Sprintf("mmapfile: file too small: need %d bytes, have %d", e.Need, e.Have)
}

// ErrNotPOD indicates that the record type is not plain old data and
// cannot be safely backed by arbitrary file bytes.
type ErrNotPOD struct {
	Type   string // Go type description
	Reason string // first violation found
}

func (e *ErrNotPOD) Error() string {
	return fmt.Sprintf("mmapfile: record type %s is not plain old data: %s", e.Type, e.Reason)
}
