// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pathmap

import (
	"fmt"
	"net/url"
	"strings"
)

// splitPath validates that path begins with '/' and splits the
// remainder into percent-decoded segments.  Adjacent or trailing
// slashes yield empty segments; "/" yields a single empty segment.
func splitPath(path string) ([]string, error) {
	if len(path) == 0 || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrPathShape, path)
	}
	parts := strings.Split(path[1:], "/")
	segs := make([]string, len(parts))
	for i, part := range parts {
		segs[i] = decodeSegment(part)
	}
	return segs, nil
}

// decodeSegment percent-decodes one path segment.  A segment that
// isn't a valid percent encoding is used literally.
func decodeSegment(seg string) string {
	if !strings.ContainsRune(seg, '%') {
		return seg
	}
	if decoded, err := url.PathUnescape(seg); err == nil {
		return decoded
	}
	return seg
}
