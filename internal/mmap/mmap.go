// Copyright 2024 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmap provides a read-only memory mapping of a file.
package mmap

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// ReaderAt is a file memory-mapped for reading.  The mapping stays
// valid until Close; the data must never be written to.
type ReaderAt struct {
	data     []byte
	isClosed atomic.Bool
}

// Open maps the file at path read-only.  A zero-length file maps to an
// empty (but valid) ReaderAt.
func Open(path string) (*ReaderAt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		// the mapping outlives the descriptor
		_ = f.Close()
	}()

	stats, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	size := stats.Size()
	if size == 0 {
		return &ReaderAt{}, nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("file %s too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unix.Mmap(%s): %w", path, err)
	}
	return &ReaderAt{data: data}, nil
}

// Data returns the mapped bytes.  Read-only.
func (r *ReaderAt) Data() []byte {
	return r.data
}

func (r *ReaderAt) Len() int {
	return len(r.data)
}

func (r *ReaderAt) Close() error {
	if r.isClosed.Swap(true) {
		return nil
	}
	data := r.data
	r.data = nil
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}
