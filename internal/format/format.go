// Package format implements the on-disk layout of mmapfile arrays: the
// fixed-width header codec and the alignment rules that locate the record
// data region.
//
// Layout, little-endian:
//
//	magic      [4]byte  "MMF1"
//	tag length uint16
//	tag        [tag length]byte
//	count      uint64
//	<zero padding to the next PageSize boundary>
//	record data
//
// The count is always encoded in 8 bytes, so the header's encoded size
// depends only on the tag, never on the magnitude of the count.
package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Magic identifies mmapfile array files (ASCII: "MMF1").
var Magic = [4]byte{'M', 'M', 'F', '1'}

// MaxTagLen is the longest encodable type tag, bounded by the uint16
// length prefix.
const MaxTagLen = math.MaxUint16

// magic + tag length prefix, enough to size the rest of the header.
const headerPrefixSize = 4 + 2

var (
	ErrBadMagic   = errors.New("bad magic")
	ErrTruncated  = errors.New("truncated header")
	ErrTagTooLong = errors.New("type tag too long")
)

// Header is the preamble at offset 0 of every array file. It is written
// once at creation time and never mutated; the record count it carries is
// the fixed capacity of the array for the life of the file.
type Header struct {
	Tag   string // record type identity
	Count uint64 // number of records
}

// AppendTo appends the encoded header to b and returns the result.
func (h Header) AppendTo(b []byte) ([]byte, error) {
	if len(h.Tag) > MaxTagLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTagTooLong, len(h.Tag))
	}
	b = append(b, Magic[:]...)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(h.Tag)))
	b = append(b, h.Tag...)
	b = binary.LittleEndian.AppendUint64(b, h.Count)
	return b, nil
}

// Encode returns the header's on-disk encoding.
func (h Header) Encode() ([]byte, error) {
	return h.AppendTo(nil)
}

// EncodedSize is the exact byte length of the header's encoding. The tag is
// variable length, so the size is computed by encoding, not estimated.
func (h Header) EncodedSize() (int, error) {
	b, err := h.AppendTo(nil)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Decode parses a header from the start of b. Trailing bytes (padding,
// record data) are ignored.
func Decode(b []byte) (Header, error) {
	r := newSliceReader(b)

	magic, err := r.readBytes(len(Magic))
	if err != nil {
		return Header{}, err
	}
	if !bytes.Equal(magic, Magic[:]) {
		return Header{}, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}

	tagLen, err := r.readUint16()
	if err != nil {
		return Header{}, err
	}
	tag, err := r.readBytes(int(tagLen))
	if err != nil {
		return Header{}, err
	}
	count, err := r.readUint64()
	if err != nil {
		return Header{}, err
	}

	return Header{Tag: string(tag), Count: count}, nil
}

// ReadHeader reads and decodes a header from the start of r. It reads the
// fixed prefix first to learn the tag length, then the exact remainder.
func ReadHeader(r io.ReaderAt) (Header, error) {
	var prefix [headerPrefixSize]byte
	if _, err := r.ReadAt(prefix[:], 0); err != nil {
		if errors.Is(err, io.EOF) {
			return Header{}, ErrTruncated
		}
		return Header{}, err
	}
	if !bytes.Equal(prefix[:4], Magic[:]) {
		return Header{}, fmt.Errorf("%w: got %q", ErrBadMagic, prefix[:4])
	}

	tagLen := int(binary.LittleEndian.Uint16(prefix[4:]))
	buf := make([]byte, headerPrefixSize+tagLen+8)
	if _, err := r.ReadAt(buf, 0); err != nil {
		if errors.Is(err, io.EOF) {
			return Header{}, ErrTruncated
		}
		return Header{}, err
	}

	return Decode(buf)
}
