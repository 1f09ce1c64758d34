package format

// PageSize is the alignment constant of the on-disk layout. The record data
// region always starts at a multiple of PageSize, which satisfies the
// page-alignment requirement mapping primitives place on the offset
// argument and, in passing, the natural alignment of any record type (Go
// types align to at most 16 bytes).
//
// PageSize is a format constant, not the host page size. Hosts with larger
// pages are handled at mapping time (see internal/mmap).
const PageSize = 4096

// AlignUp rounds n up to the next multiple of align. align must be a power
// of two.
func AlignUp(n int64, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}

// DataOffset is the file offset of the record data: the header's encoded
// size rounded up to the next page boundary. Record data is aligned to
// PageSize only; no additional rounding to the record type's own alignment
// is performed.
func (h Header) DataOffset() (int64, error) {
	sz, err := h.EncodedSize()
	if err != nil {
		return 0, err
	}
	return AlignUp(int64(sz), PageSize), nil
}
