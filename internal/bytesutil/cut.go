// Copyright 2021 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytesutil

import (
	"bytes"
)

// Cut slices s around the first instance of sep,
// returning the text before and after sep.
// The found result reports whether sep appears in s.
// If sep does not appear in s, Cut returns s, nil, false.
//
// Cut returns slices of the original slice s, not copies.
func Cut(s []byte, sep byte) (l []byte, r []byte, ok bool) {
	if i := bytes.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, nil, false
}

// CutLine returns everything in s up to, but not including, the first
// '\n'.  ok is false if s contains no newline at all.
func CutLine(s []byte) (line []byte, ok bool) {
	line, _, ok = Cut(s, '\n')
	return line, ok
}
