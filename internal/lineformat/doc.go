// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package lineformat encodes and decodes the textual node lines of a
// pathmap file.
//
// A node line is a concatenation of fields.  An optional self field
// comes first, followed by one child field per segment:
//
//	┌──────────┬─────────────┬─────────────┬────┐
//	│ :1a or ! │ /seg:hexoff │ /seg2!      │ …  │
//	└──────────┴─────────────┴─────────────┴────┘
//
//	selfField  := ':' hexNat | '!'
//	childField := '/' segment ( ':' hexNat | '!' )
//
// hexNat is a lowercase base-16 natural with the empty digit string
// meaning zero.  '!' marks the payload value `true` carried inline
// instead of by offset.  Within a segment the bytes '\', '/', ':' and
// '!' are escaped by a leading backslash; anything else appears
// verbatim, so lines are valid UTF-8 whenever segments are.
//
// Children are encoded in lexicographic byte order of their segments.
// Readers look children up by name and don't rely on the order, but a
// stable order is what makes identical subtrees produce identical line
// text, which is what line-level deduplication keys on.
package lineformat
