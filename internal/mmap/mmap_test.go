package mmap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T, size int64) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapped")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	require.NoError(t, f.Truncate(size))
	return f
}

func TestMapReadWrite(t *testing.T) {
	f := newTestFile(t, 8192)

	r, err := Map(f, 0, 8192, Options{Write: true})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Data, 8192)
	assert.Equal(t, make([]byte, 8192), r.Data)

	copy(r.Data, "hello mapping")
	require.NoError(t, r.Sync())

	// The write must be visible through plain file reads.
	buf := make([]byte, 13)
	_, err = f.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello mapping", string(buf))
}

func TestMapAtOffset(t *testing.T) {
	f := newTestFile(t, 16384)

	_, err := f.WriteAt([]byte("payload"), 4096)
	require.NoError(t, err)

	r, err := Map(f, 4096, 4096, Options{})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Data, 4096)
	assert.Equal(t, "payload", string(r.Data[:7]))
}

func TestMapUnalignedOffset(t *testing.T) {
	f := newTestFile(t, 8192)

	_, err := f.WriteAt([]byte("window"), 512)
	require.NoError(t, err)

	// 512 is not a legal mapping offset; Map must adjust internally and
	// still hand back exactly the requested window.
	r, err := Map(f, 512, 1024, Options{})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Data, 1024)
	assert.Equal(t, "window", string(r.Data[:6]))
}

func TestMapPrivateWritesNotPersisted(t *testing.T) {
	f := newTestFile(t, 4096)

	r, err := Map(f, 0, 4096, Options{Write: true, Private: true})
	require.NoError(t, err)

	for i := range r.Data {
		r.Data[i] = 0xAB
	}
	require.NoError(t, r.Sync()) // no-op for private mappings
	require.NoError(t, r.Close())

	buf := make([]byte, 4096)
	_, err = f.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 4096), buf, "private writes must not reach the file")
}

func TestMapSharedVisibleAcrossMappings(t *testing.T) {
	f := newTestFile(t, 4096)

	w, err := Map(f, 0, 4096, Options{Write: true})
	require.NoError(t, err)
	defer w.Close()

	rd, err := Map(f, 0, 4096, Options{})
	require.NoError(t, err)
	defer rd.Close()

	copy(w.Data, "shared")
	assert.True(t, bytes.HasPrefix(rd.Data, []byte("shared")))
}

func TestMapZeroLength(t *testing.T) {
	f := newTestFile(t, 4096)

	r, err := Map(f, 0, 0, Options{Write: true})
	require.NoError(t, err)
	assert.Empty(t, r.Data)
	assert.NoError(t, r.Sync())
	assert.NoError(t, r.Close())
}

func TestMapBadArguments(t *testing.T) {
	f := newTestFile(t, 4096)

	_, err := Map(f, -1, 4096, Options{})
	assert.ErrorIs(t, err, ErrNegativeOffset)

	_, err = Map(f, 0, -1, Options{})
	assert.ErrorIs(t, err, ErrNegativeLength)
}

func TestRegionCloseIdempotent(t *testing.T) {
	f := newTestFile(t, 4096)

	r, err := Map(f, 0, 4096, Options{})
	require.NoError(t, err)

	require.NoError(t, r.Close())
	assert.Nil(t, r.Data)
	require.NoError(t, r.Close())

	var nilRegion *Region
	assert.NoError(t, nilRegion.Close())
	assert.NoError(t, nilRegion.Sync())
}
