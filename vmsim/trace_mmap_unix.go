//go:build unix

package vmsim

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapTrace maps the trace file read-only. release unmaps it.
func mapTrace(path string) (data []byte, release func(), err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	size := info.Size()
	if size == 0 {
		// Zero-length mappings are rejected by mmap
		return nil, func() {}, nil
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	// Trace is read front to back exactly once
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return data, func() { _ = unix.Munmap(data) }, nil
}
