//go:build windows

package mmap

import (
	"syscall"
	"unsafe"
)

// Map view offsets must align to the allocation granularity, which is 64K
// on every supported Windows version.
func mapAlignment() int64 {
	return 64 * 1024
}

func mmap(fd uintptr, offset int64, length int, opts Options) ([]byte, error) {
	prot := uint32(syscall.PAGE_READONLY)
	access := uint32(syscall.FILE_MAP_READ)
	switch {
	case opts.Private:
		// FILE_MAP_COPY yields a copy-on-write view whether or not writes
		// were requested.
		prot = syscall.PAGE_WRITECOPY
		access = syscall.FILE_MAP_COPY
	case opts.Write:
		prot = syscall.PAGE_READWRITE
		access = syscall.FILE_MAP_WRITE
	}

	end := uint64(offset) + uint64(length)
	h, err := syscall.CreateFileMapping(syscall.Handle(fd), nil, prot, uint32(end>>32), uint32(end), nil)
	if err != nil {
		return nil, err
	}
	defer syscall.CloseHandle(h)

	addr, err := syscall.MapViewOfFile(h, access, uint32(uint64(offset)>>32), uint32(uint64(offset)), uintptr(length))
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

func munmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return syscall.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0])))
}

func msync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return syscall.FlushViewOfFile(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}
