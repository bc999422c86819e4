// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package lineformat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentEscapeRoundTrip(t *testing.T) {
	for _, seg := range []string{
		"",
		"foo",
		"fancy/paths",
		"with:colon",
		"bang!bang",
		`back\slash`,
		`all\/:!of-them`,
		"ελληνικά",
		"zip-off-trousers",
	} {
		escaped := AppendEscapedSegment(nil, seg)
		got, err := UnescapeSegment(escaped)
		require.NoError(t, err)
		require.Equal(t, seg, got)
	}
}

func TestSegmentEscapeEncoding(t *testing.T) {
	require.Equal(t, `fancy\/paths`, string(AppendEscapedSegment(nil, "fancy/paths")))
	require.Equal(t, `a\:b\!c\\d`, string(AppendEscapedSegment(nil, `a:b!c\d`)))
	require.Empty(t, AppendEscapedSegment(nil, ""))
}

func TestUnescapeSegmentErrors(t *testing.T) {
	_, err := UnescapeSegment([]byte(`dangling\`))
	require.ErrorIs(t, err, ErrMalformedLine)
}
