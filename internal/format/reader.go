package format

import (
	"encoding/binary"
	"fmt"
)

// sliceReader provides bounds-checked reads from a byte slice. Out of
// bounds reads surface as ErrTruncated so decoding a short header fails
// cleanly instead of panicking.
type sliceReader struct {
	b   []byte
	off int
}

func newSliceReader(b []byte) *sliceReader {
	return &sliceReader{b: b}
}

func (r *sliceReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, len(r.b))
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *sliceReader) readUint16() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *sliceReader) readUint64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
