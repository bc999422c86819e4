// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pathmap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pathmap/pathmap/internal/trie"
)

// BuilderOption configures the Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logger *slog.Logger
}

// WithBuilderLogger sets an optional logger for the builder to use for
// serialization statistics.  If not provided, no logging output will be
// produced.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// Builder accumulates path→payload pairs and serializes them into the
// immutable pathmap byte format.  It must not be shared between
// concurrent writers.
type Builder struct {
	t      *trie.Trie
	logger *slog.Logger
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	var options builderOptions
	options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&options)
	}
	return &Builder{
		t:      trie.New(),
		logger: options.logger,
	}
}

// Insert maps path to payload, overwriting any payload previously
// inserted at the same path.  The path must begin with '/'; its
// segments are percent-decoded before storage.  Payload may be any
// JSON-encodable value.
func (b *Builder) Insert(path string, payload any) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	b.t.Insert(segs, payload)
	return nil
}

// BulkInsert inserts every entry of m.  All paths are validated up
// front, so a failure leaves the builder untouched.
func (b *Builder) BulkInsert(m map[string]any) error {
	segsByPath := make(map[string][]string, len(m))
	for path := range m {
		segs, err := splitPath(path)
		if err != nil {
			return err
		}
		segsByPath[path] = segs
	}
	for path, payload := range m {
		b.t.Insert(segsByPath[path], payload)
	}
	return nil
}

// Find returns the payload previously inserted at path, exactly as it
// was passed to Insert.  ok is false if the path was never inserted.
func (b *Builder) Find(path string) (payload any, ok bool, err error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, false, err
	}
	payload, ok = b.t.Find(segs)
	return payload, ok, nil
}

// Len returns the number of paths inserted so far.
func (b *Builder) Len() int {
	return b.t.Len()
}

// Stringify serializes the builder's current contents into the file
// bytes.  The output is deterministic for a given set of insertions.
func (b *Builder) Stringify() ([]byte, error) {
	return b.t.Stringify(b.logger)
}

// WriteFile serializes the builder and atomically publishes the result
// at path: the bytes are written through a temp file in the destination
// directory, made read-only, and renamed into place.
func (b *Builder) WriteFile(path string) error {
	data, err := b.Stringify()
	if err != nil {
		return err
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "pathmap-builder.*.pathmap")
	if err != nil {
		return fmt.Errorf("CreateTemp failed (may need permissions for dir %q): %w", dir, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Write: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Sync: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Close: %w", err)
	}

	// the file is immutable once published: make it read-only
	if err := os.Chmod(f.Name(), 0444); err != nil {
		return fmt.Errorf("os.Chmod(0444): %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	b.logger.Debug("wrote pathmap file", "path", path, "bytes", len(data), "paths", b.t.Len())
	return nil
}
