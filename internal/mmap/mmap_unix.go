//go:build !windows

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapAlignment() int64 {
	return int64(os.Getpagesize())
}

func mmap(fd uintptr, offset int64, length int, opts Options) ([]byte, error) {
	prot := unix.PROT_READ
	if opts.Write {
		prot |= unix.PROT_WRITE
	}
	flags := unix.MAP_SHARED
	if opts.Private {
		flags = unix.MAP_PRIVATE
	}
	return unix.Mmap(int(fd), offset, length, prot, flags)
}

func munmap(data []byte) error {
	return unix.Munmap(data)
}

func msync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}
