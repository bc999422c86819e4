// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pathmap builds and reads compact, human-inspectable files
// mapping large sets of URL-style paths to small JSON payloads.
//
// A Builder accumulates path→payload pairs in a radix trie and
// serializes them once; a Reader answers point lookups over the
// resulting bytes without materializing the trie, parsing only the
// lines a lookup touches.
//
// A pathmap file is newline-delimited UTF-8 text.  Each line is either
// a JSON payload or a node line; node lines refer to other lines by
// absolute byte offset, and the root node line comes last:
//
//	┌──────────────────────┐ offset 0
//	│ "f"                  │ leaf payload
//	├──────────────────────┤ offset 4
//	│ "b"                  │ leaf payload
//	├──────────────────────┤ offset 8
//	│ :/bar:4              │ node for /foo: self payload at 0, child bar at 4
//	├──────────────────────┤ offset 16
//	│ /foo:8               │ root node
//	└──────────────────────┘
//
// Identical lines are stored once, so repeated payloads and repeated
// subtrees cost one line no matter how often they occur.
//
// Because every reference is an absolute byte offset, the bytes are
// immutable once written: editing, reformatting or re-encoding a
// pathmap file invalidates it.
package pathmap
