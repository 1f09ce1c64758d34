package mmapfile

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"unsafe"

	"github.com/kaspar030/mmapfile/internal/format"
	"github.com/kaspar030/mmapfile/internal/fs"
	"github.com/kaspar030/mmapfile/internal/mmap"
)

// Array is a fixed-capacity sequence of T records backed by a
// memory-mapped file. The record count is fixed when the file is created;
// reads and writes through Slice go directly to the mapped file bytes.
//
// An Array owns its mapping exclusively. Close releases it; slices
// obtained from Slice or Bytes must not be used afterwards.
//
// Array performs no locking. The mapping is shared, so concurrent writers
// (goroutines or other processes mapping the same file) race unless the
// caller coordinates them.
type Array[T any] struct {
	header  format.Header
	region  *mmap.Region
	file    fs.File
	recSize int
	opts    options
}

// Create creates the file at path and returns a view of capacity
// zero-initialized records. It fails if path already exists
// (errors.Is(err, os.ErrExist)), if T is not plain old data (*ErrNotPOD),
// or on any I/O error. On failure the partially created file is removed.
func Create[T any](path string, capacity uint64, opts ...Option) (*Array[T], error) {
	o := buildOptions(opts)

	rt := reflect.TypeFor[T]()
	if err := checkPOD(rt); err != nil {
		return nil, err
	}
	tag := o.tag
	if tag == "" {
		tag = typeTag(rt)
	}

	hdr := format.Header{Tag: tag, Count: capacity}
	enc, err := hdr.Encode()
	if err != nil {
		return nil, fmt.Errorf("mmapfile: create %s: %w", path, err)
	}

	recSize := int(rt.Size())
	dataOff := format.AlignUp(int64(len(enc)), format.PageSize)
	dataLen, ok := dataRegionSize(capacity, recSize, dataOff)
	if !ok {
		return nil, ErrTooLarge
	}
	fileSize := format.AlignUp(dataOff+int64(dataLen), format.PageSize)

	f, err := o.fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: create %s: %w", path, err)
	}
	fail := func(err error) (*Array[T], error) {
		_ = f.Close()
		_ = o.fsys.Remove(path)
		return nil, fmt.Errorf("mmapfile: create %s: %w", path, err)
	}

	if _, err := f.Write(enc); err != nil {
		return fail(err)
	}
	// Extends the file with zeros, covering the header padding, the
	// record data, and the trailing padding up to the page boundary.
	if err := f.Truncate(fileSize); err != nil {
		return fail(err)
	}

	a, err := newArray[T](f, hdr, dataOff, dataLen, recSize, rt, o)
	if err != nil {
		return fail(err)
	}

	o.logger.Debug("created array",
		"path", path,
		"capacity", capacity,
		"record_size", recSize,
		"tag", tag,
	)

	return a, nil
}

// Open maps the existing array at path. It fails if the file is missing
// (errors.Is(err, os.ErrNotExist)), does not carry the mmapfile magic
// (ErrBadMagic), ends inside the header (ErrTruncated), stores a type
// identity other than T's (*ErrTypeMismatch), or is too small for the
// record count its header declares (*ErrCapacity).
func Open[T any](path string, opts ...Option) (*Array[T], error) {
	o := buildOptions(opts)

	rt := reflect.TypeFor[T]()
	if err := checkPOD(rt); err != nil {
		return nil, err
	}
	want := o.tag
	if want == "" {
		want = typeTag(rt)
	}

	f, err := o.fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: open %s: %w", path, err)
	}
	fail := func(err error) (*Array[T], error) {
		_ = f.Close()
		return nil, fmt.Errorf("mmapfile: open %s: %w", path, err)
	}

	hdr, err := format.ReadHeader(f)
	if err != nil {
		return fail(err)
	}
	if hdr.Tag != want {
		return fail(&ErrTypeMismatch{Want: want, Got: hdr.Tag})
	}

	// The data offset derives from the header's own encoded size, so a
	// file written with a longer tag locates its data correctly.
	dataOff, err := hdr.DataOffset()
	if err != nil {
		return fail(err)
	}
	recSize := int(rt.Size())
	dataLen, ok := dataRegionSize(hdr.Count, recSize, dataOff)
	if !ok {
		return fail(ErrTooLarge)
	}

	fi, err := f.Stat()
	if err != nil {
		return fail(err)
	}
	if need := dataOff + int64(dataLen); fi.Size() < need {
		return fail(&ErrCapacity{Need: need, Have: fi.Size()})
	}

	a, err := newArray[T](f, hdr, dataOff, dataLen, recSize, rt, o)
	if err != nil {
		return fail(err)
	}

	o.logger.Debug("opened array",
		"path", path,
		"count", hdr.Count,
		"record_size", recSize,
		"tag", hdr.Tag,
	)

	return a, nil
}

// newArray maps the data region and wraps it. On error nothing is mapped;
// the caller still owns the file.
func newArray[T any](f fs.File, hdr format.Header, dataOff int64, dataLen int, recSize int, rt reflect.Type, o options) (*Array[T], error) {
	region, err := mmap.Map(f, dataOff, dataLen, mmap.Options{
		Write:   true,
		Private: o.private,
	})
	if err != nil {
		return nil, err
	}

	// The data offset is a multiple of the page size, so this cannot
	// fire; it guards the unsafe reinterpretation in Slice.
	if len(region.Data) > 0 {
		if addr := uintptr(unsafe.Pointer(&region.Data[0])); addr%uintptr(rt.Align()) != 0 {
			_ = region.Close()
			return nil, fmt.Errorf("mapping at 0x%x is not aligned for %s", addr, rt)
		}
	}

	return &Array[T]{
		header:  hdr,
		region:  region,
		file:    f,
		recSize: recSize,
		opts:    o,
	}, nil
}

// dataRegionSize computes count*recSize, reporting false if the region
// (placed at dataOff) would not be addressable on this host.
func dataRegionSize(count uint64, recSize int, dataOff int64) (int, bool) {
	if count == 0 {
		return 0, true
	}
	if count > uint64(math.MaxInt)/uint64(recSize) {
		return 0, false
	}
	n := int64(count) * int64(recSize)
	if n < 0 || n > math.MaxInt64-dataOff-format.PageSize {
		return 0, false
	}
	return int(n), true
}

// Len returns the number of records, as recorded in the file header.
func (a *Array[T]) Len() uint64 {
	return a.header.Count
}

// Tag returns the type identity stored in the file header.
func (a *Array[T]) Tag() string {
	return a.header.Tag
}

// Slice returns the records as a []T aliasing the mapped file bytes.
// Mutations are immediately visible to every other mapper of the file
// (unless the array was opened with WithPrivate) and persist once flushed.
// The slice is invalid after Close. On a closed array Slice returns nil.
func (a *Array[T]) Slice() []T {
	if a == nil || a.region == nil || len(a.region.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&a.region.Data[0])), int(a.header.Count))
}

// Bytes returns the raw data region, aliasing the same memory as Slice.
func (a *Array[T]) Bytes() []byte {
	if a == nil || a.region == nil {
		return nil
	}
	return a.region.Data
}

// Sync flushes the mapping and the backing file to stable storage.
func (a *Array[T]) Sync() error {
	if a == nil || a.file == nil {
		return ErrClosed
	}
	if err := a.region.Sync(); err != nil {
		return err
	}
	return a.file.Sync()
}

// Close unmaps the array and closes the backing file. Close is idempotent
// and nil-safe; it reports the first error encountered.
func (a *Array[T]) Close() error {
	if a == nil {
		return nil
	}
	var firstErr error
	if a.region != nil {
		if a.opts.syncOnClose {
			if err := a.region.Sync(); err != nil {
				firstErr = err
			}
		}
		if err := a.region.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.region = nil
	}
	if a.file != nil {
		if err := a.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.file = nil
	}
	return firstErr
}
