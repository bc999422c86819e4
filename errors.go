// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pathmap

import (
	"errors"

	"github.com/pathmap/pathmap/internal/lineformat"
)

var (
	// ErrPathShape means a path argument did not begin with '/'.
	ErrPathShape = errors.New("pathmap: path must begin with '/'")

	// ErrMalformedLine means a node line did not conform to the line
	// grammar.
	ErrMalformedLine = lineformat.ErrMalformedLine

	// ErrUnexpectedEOF means a line scan ran past the end of the
	// buffer, or the buffer held no newline-terminated line at all.
	ErrUnexpectedEOF = errors.New("pathmap: unexpected end of buffer")

	// ErrUnexpectedPayload means the root offset pointed at a JSON
	// payload where a node line is required.
	ErrUnexpectedPayload = errors.New("pathmap: expected a node line, found a JSON payload")
)
