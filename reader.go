// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pathmap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/pathmap/pathmap/internal/bytesutil"
	"github.com/pathmap/pathmap/internal/lineformat"
	"github.com/pathmap/pathmap/internal/mmap"
	"github.com/pathmap/pathmap/internal/unsafestring"
)

// Reader answers point lookups over the bytes of a pathmap file.  It
// never mutates the underlying buffer and parses only the lines a
// lookup touches, caching decoded lines by offset.
//
// A Reader is not safe for concurrent use without external locking
// (the parse cache is an ordinary map); distinct Readers over the same
// buffer are independent and safe.
type Reader struct {
	data    []byte
	rootOff uint64
	cache   map[uint64]cachedLine
	mapping *mmap.ReaderAt
}

// cachedLine is a decoded line: either a node or a JSON payload.
type cachedLine struct {
	isNode  bool
	node    lineformat.Node
	payload any
}

// NewReader constructs a Reader over data, which must outlive the
// Reader and must not be modified.  The root node line is located by
// scanning backward past any trailing newlines.
func NewReader(data []byte) (*Reader, error) {
	end := len(data)
	for end > 0 && data[end-1] == '\n' {
		end--
	}
	if end == len(data) {
		// empty buffer, or a final line with no terminating newline
		return nil, fmt.Errorf("%w: no newline-terminated line", ErrUnexpectedEOF)
	}

	rootOff := uint64(0)
	if idx := bytes.LastIndexByte(data[:end], '\n'); idx >= 0 {
		rootOff = uint64(idx + 1)
	}

	return &Reader{
		data:    data,
		rootOff: rootOff,
		cache:   make(map[uint64]cachedLine),
	}, nil
}

// NewReaderString constructs a Reader over the bytes of s without
// copying them.
func NewReaderString(s string) (*Reader, error) {
	return NewReader(unsafestring.ToBytes(s))
}

// Open memory-maps the pathmap file at path and constructs a Reader
// over the mapping.  Close releases the mapping.
func Open(path string) (*Reader, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap.Open(%s): %w", path, err)
	}
	if m.Len() > 0 {
		// lookups jump between offsets, not sequentially
		if err := unix.Madvise(m.Data(), unix.MADV_RANDOM); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("madvise: %w", err)
		}
	}
	r, err := NewReader(m.Data())
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	r.mapping = m
	return r, nil
}

// Close releases the file mapping for Readers constructed with Open.
// It is a no-op for Readers over caller-owned buffers.
func (r *Reader) Close() error {
	if r.mapping != nil {
		return r.mapping.Close()
	}
	return nil
}

// Find resolves path through the node lines of the file and returns
// the decoded JSON payload stored at it.  ok is false if the path is
// not present.  The path must begin with '/'.
func (r *Reader) Find(path string) (payload any, ok bool, err error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, false, err
	}

	cur, err := r.nodeAt(r.rootOff)
	if err != nil {
		return nil, false, err
	}

	for i, seg := range segs {
		ref, ok := cur.Children[seg]
		if !ok {
			return nil, false, nil
		}
		last := i == len(segs)-1
		switch ref.Kind {
		case lineformat.RefInline:
			if !last {
				return nil, false, nil
			}
			return true, true, nil
		case lineformat.RefOffset:
			line, err := r.lineAt(ref.Off)
			if err != nil {
				return nil, false, err
			}
			if lineformat.IsNodeLine(line) {
				cur, err = r.nodeAt(ref.Off)
				if err != nil {
					return nil, false, err
				}
				continue
			}
			// a payload line resolves the lookup only if the path is
			// fully consumed
			if !last {
				return nil, false, nil
			}
			payload, err := r.payloadAt(ref.Off)
			if err != nil {
				return nil, false, err
			}
			return payload, true, nil
		}
	}

	// all segments consumed on a node line: the payload, if any, is
	// the node's self reference
	switch cur.Self.Kind {
	case lineformat.RefInline:
		return true, true, nil
	case lineformat.RefOffset:
		payload, err := r.payloadAt(cur.Self.Off)
		if err != nil {
			return nil, false, err
		}
		return payload, true, nil
	}
	return nil, false, nil
}

// lineAt returns the raw bytes of the line starting at off, without
// the trailing newline.
func (r *Reader) lineAt(off uint64) ([]byte, error) {
	if off >= uint64(len(r.data)) {
		return nil, fmt.Errorf("%w: offset %d beyond buffer (%d bytes)", ErrUnexpectedEOF, off, len(r.data))
	}
	line, ok := bytesutil.CutLine(r.data[off:])
	if !ok {
		return nil, fmt.Errorf("%w: no newline after offset %d", ErrUnexpectedEOF, off)
	}
	return line, nil
}

// nodeAt decodes the node line at off, consulting the parse cache
// first.  A JSON payload at off fails with ErrUnexpectedPayload.
func (r *Reader) nodeAt(off uint64) (lineformat.Node, error) {
	if e, ok := r.cache[off]; ok {
		if !e.isNode {
			return lineformat.Node{}, fmt.Errorf("%w: at offset %d", ErrUnexpectedPayload, off)
		}
		return e.node, nil
	}
	line, err := r.lineAt(off)
	if err != nil {
		return lineformat.Node{}, err
	}
	if !lineformat.IsNodeLine(line) {
		return lineformat.Node{}, fmt.Errorf("%w: at offset %d", ErrUnexpectedPayload, off)
	}
	n, err := lineformat.DecodeNode(line)
	if err != nil {
		return lineformat.Node{}, fmt.Errorf("decoding node line at offset %d: %w", off, err)
	}
	r.cache[off] = cachedLine{isNode: true, node: n}
	return n, nil
}

// payloadAt decodes the JSON payload line at off, consulting the parse
// cache first.
func (r *Reader) payloadAt(off uint64) (any, error) {
	if e, ok := r.cache[off]; ok && !e.isNode {
		return e.payload, nil
	}
	line, err := r.lineAt(off)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(line, &payload); err != nil {
		return nil, fmt.Errorf("decoding payload at offset %d: %w", off, err)
	}
	r.cache[off] = cachedLine{payload: payload}
	return payload, nil
}
