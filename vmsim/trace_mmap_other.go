//go:build !unix

package vmsim

import "os"

// mapTrace reads the trace file into memory on platforms without mmap support
func mapTrace(path string) (data []byte, release func(), err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
