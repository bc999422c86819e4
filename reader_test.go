// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pathmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReaderNoCompleteLine(t *testing.T) {
	for _, input := range []string{
		"",
		`"json with no newline"`,
		"/foo:",
	} {
		_, err := NewReader([]byte(input))
		require.ErrorIs(t, err, ErrUnexpectedEOF, "input %q", input)
	}
}

func TestNewReaderTrailingNewlines(t *testing.T) {
	data := buildFile(t, map[string]any{"/foo": "f"})
	data = append(data, '\n', '\n', '\n')

	r, err := NewReader(data)
	require.NoError(t, err)
	v, ok, err := r.Find("/foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "f", v)
}

func TestNewReaderEmptyRootLine(t *testing.T) {
	// a lone empty node line: nothing is present, but nothing errors
	r, err := NewReader([]byte("\n"))
	require.NoError(t, err)

	_, ok, err := r.Find("/anything")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewReaderString(t *testing.T) {
	data := buildFile(t, map[string]any{"/foo": "f"})

	r, err := NewReaderString(string(data))
	require.NoError(t, err)
	v, ok, err := r.Find("/foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "f", v)
}

func TestRootMustBeNodeLine(t *testing.T) {
	r, err := NewReader([]byte("\"just a payload\"\n"))
	require.NoError(t, err)

	_, _, err = r.Find("/x")
	require.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestMalformedRootLine(t *testing.T) {
	// a node-line starter followed by a key with no value marker
	r, err := NewReader([]byte("/foo\n"))
	require.NoError(t, err)

	_, _, err = r.Find("/foo")
	require.ErrorIs(t, err, ErrMalformedLine)
}

func TestDanglingOffset(t *testing.T) {
	// child reference far past the end of the buffer
	r, err := NewReader([]byte("/a:ffff\n"))
	require.NoError(t, err)

	_, _, err = r.Find("/a")
	require.ErrorIs(t, err, ErrUnexpectedEOF)

	// lookups that never touch the dangling reference still work
	_, ok, err := r.Find("/b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFailedLookupDoesNotPoisonLaterOnes(t *testing.T) {
	data := buildFile(t, map[string]any{"/good": "v"})
	// graft a root with one dangling child next to the intact payload
	data = append(data, []byte("/good:/bad:ffffff\n")...)

	r, err := NewReader(data)
	require.NoError(t, err)

	_, _, err = r.Find("/bad")
	require.ErrorIs(t, err, ErrUnexpectedEOF)

	v, ok, err := r.Find("/good")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestRepeatedLookupsHitParseCache(t *testing.T) {
	entries := map[string]any{
		"/a/b": "deep",
		"/a/c": float64(9),
	}
	r, err := NewReader(buildFile(t, entries))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for path, expected := range entries {
			v, ok, err := r.Find(path)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, expected, v)
		}
	}
	// the cache holds each decoded line once, not once per lookup
	require.LessOrEqual(t, len(r.cache), 4)
}

func TestReaderCloseWithoutMapping(t *testing.T) {
	r, err := NewReader(buildFile(t, map[string]any{"/a": "v"}))
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
