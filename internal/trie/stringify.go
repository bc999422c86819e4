// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package trie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgryski/go-farm"

	"github.com/pathmap/pathmap/internal/bytesutil"
	"github.com/pathmap/pathmap/internal/lineformat"
)

// serializer accumulates the output file.  Lines are appended exactly
// once: push consults a content-hash table first and hands back the
// original offset for a line that was already emitted.
type serializer struct {
	buf []byte
	// farm.Hash64(line) -> offsets of lines emitted with that hash.
	// A hash hit is confirmed against the bytes already in buf, so a
	// hash collision costs a comparison, never a bad reference.
	dedup map[uint64][]uint64

	emitted int
	reused  int
}

// push appends line (plus the terminating newline) to the buffer and
// returns its offset, or the offset of an identical earlier line.
func (s *serializer) push(line []byte) uint64 {
	h := farm.Hash64(line)
	for _, off := range s.dedup[h] {
		prior, ok := bytesutil.CutLine(s.buf[off:])
		if ok && bytes.Equal(prior, line) {
			s.reused++
			return off
		}
	}
	off := uint64(len(s.buf))
	s.buf = append(s.buf, line...)
	s.buf = append(s.buf, '\n')
	s.dedup[h] = append(s.dedup[h], off)
	s.emitted++
	return off
}

// emitLeaf returns the reference for a payload: the inline marker for
// the sentinel `true`, otherwise the offset of its JSON line.
func (s *serializer) emitLeaf(payload any) (lineformat.Ref, error) {
	if b, ok := payload.(bool); ok && b {
		return lineformat.Inline, nil
	}
	enc, err := json.Marshal(payload)
	if err != nil {
		return lineformat.Ref{}, fmt.Errorf("json.Marshal: %w", err)
	}
	return lineformat.Offset(s.push(enc)), nil
}

// emitNode writes n's subtree depth-first and returns the offset of
// n's node line.  Children are emitted in ascending segment byte order
// so offsets, and therefore line text, are deterministic.
func (s *serializer) emitNode(n *node) (uint64, error) {
	ln := lineformat.Node{Children: make(map[string]lineformat.Ref, len(n.children))}
	if n.hasPayload {
		self, err := s.emitLeaf(n.payload)
		if err != nil {
			return 0, err
		}
		ln.Self = self
	}

	segs := make([]string, 0, len(n.children))
	for seg := range n.children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)

	for _, seg := range segs {
		child := n.children[seg]
		var ref lineformat.Ref
		var err error
		if child.leafOnly() {
			ref, err = s.emitLeaf(child.payload)
		} else {
			var off uint64
			off, err = s.emitNode(child)
			ref = lineformat.Offset(off)
		}
		if err != nil {
			return 0, err
		}
		ln.Children[seg] = ref
	}

	return s.push(lineformat.AppendNode(nil, ln)), nil
}

// Stringify serializes the trie into the immutable file bytes.  The
// root's node line is pushed last, which is how readers locate it.
func (t *Trie) Stringify(logger *slog.Logger) ([]byte, error) {
	s := &serializer{dedup: make(map[uint64][]uint64)}
	if _, err := s.emitNode(&t.root); err != nil {
		return nil, err
	}
	logger.Debug("stringify complete",
		"lines", s.emitted, "deduplicated", s.reused, "bytes", len(s.buf))
	return s.buf, nil
}
