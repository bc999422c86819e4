// Copyright 2021 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytesutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCut(t *testing.T) {
	for _, testcase := range []string{
		"",
		"a\nb",
		"\na\nb\n",
		"a\nb\n",
		"no newline here",
	} {
		input := []byte(testcase)
		expected := bytes.SplitN(input, []byte{'\n'}, 2)
		l, r, ok := Cut(input, '\n')
		if len(expected) < 2 {
			require.False(t, ok)
			require.Equal(t, input, l)
			require.Nil(t, r)
		} else {
			require.True(t, ok)
			require.Equal(t, expected[0], l)
			require.Equal(t, expected[1], r)
		}
	}
}

func TestCutLine(t *testing.T) {
	line, ok := CutLine([]byte("\"leaf\"\n/foo:\n"))
	require.True(t, ok)
	require.Equal(t, []byte(`"leaf"`), line)

	_, ok = CutLine([]byte("unterminated"))
	require.False(t, ok)

	line, ok = CutLine([]byte("\n"))
	require.True(t, ok)
	require.Empty(t, line)
}
