// Copyright 2024 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bloom implements the Bloom filter that can accompany a
// pathmap file, letting readers short-circuit lookups for keys that
// were never inserted.
//
// Membership is double-hashed: with h1 = xxh64(value, seed) and
// h2 = xxh64(value, seed+1), the i-th bit position is (h1 + i*h2) mod m,
// the sum wrapping at 2^64.  There are no false negatives; the false
// positive rate is governed by the configured target rate.
package bloom

import (
	"encoding/base64"
	"errors"
	"math"

	"github.com/OneOfOne/xxhash"

	"github.com/pathmap/pathmap/bitset"
	"github.com/pathmap/pathmap/internal/unsafestring"
	"github.com/pathmap/pathmap/internal/zero"
)

var (
	ErrBadCount  = errors.New("bloom: expected element count must be positive")
	ErrBadRate   = errors.New("bloom: false-positive rate must be in (0, 1)")
	ErrBadBits   = errors.New("bloom: bit size must be positive")
	ErrBadHashes = errors.New("bloom: hash count must be non-negative")
	ErrBadSeed   = errors.New("bloom: seed must be at most 2^53-1")
)

// maxSeed keeps seeds exactly representable in every consumer of the
// serialized filter config.
const maxSeed = 1<<53 - 1

// defaultRate is the target false-positive rate when the config leaves
// P zero.
const defaultRate = 0.01

// Config sizes a Filter.  N is required; the zero value of every other
// field means "derive the default".
type Config struct {
	// N is the expected number of elements.
	N int
	// P is the target false-positive rate, 0 < P < 1.
	P float64
	// M overrides the bit size.  The default is sized from N and P and
	// rounded up to a multiple of 24 so the bit array base64-encodes
	// without padding.
	M uint64
	// K overrides the number of hash positions per element.  The
	// default is round(-log2(P)).
	K int
	// Seed is the base hash seed.
	Seed uint64
}

// Filter is a Bloom filter over string values.  It must not be shared
// between concurrent writers.
type Filter struct {
	bits *bitset.Bitset
	m    uint64
	k    int
	seed uint64
}

// New validates cfg, fills in defaulted parameters, and returns a
// zeroed filter.
func New(cfg Config) (*Filter, error) {
	if cfg.N <= 0 {
		return nil, ErrBadCount
	}
	if cfg.Seed > maxSeed {
		return nil, ErrBadSeed
	}
	if cfg.K < 0 {
		return nil, ErrBadHashes
	}

	p := cfg.P
	if p == 0 {
		p = defaultRate
	}
	if p <= 0 || p >= 1 || math.IsNaN(p) {
		return nil, ErrBadRate
	}

	m := cfg.M
	if m == 0 {
		m = defaultBits(cfg.N, p)
	}
	if m == 0 {
		return nil, ErrBadBits
	}

	k := cfg.K
	if k == 0 {
		k = defaultHashes(p)
	}

	return &Filter{
		bits: bitset.New(m),
		m:    m,
		k:    k,
		seed: cfg.Seed,
	}, nil
}

// defaultBits sizes the bit array for n elements at rate p, rounded up
// to a multiple of 24 (three whole bytes, so base64 needs no padding).
func defaultBits(n int, p float64) uint64 {
	bits := -float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)
	return uint64(math.Ceil(bits/24)) * 24
}

// defaultHashes is round(-log2(p)), clamped to at least one probe.
func defaultHashes(p float64) int {
	k := int(math.Round(-math.Log2(p)))
	if k < 1 {
		k = 1
	}
	return k
}

func (f *Filter) hashPair(value string) (h1, h2 uint64) {
	b := unsafestring.ToBytes(value)
	h1 = xxhash.Checksum64S(b, f.seed)
	h2 = xxhash.Checksum64S(b, f.seed+1)
	return h1, h2
}

// Add sets every hashed bit for value.
func (f *Filter) Add(value string) {
	h1, h2 := f.hashPair(value)
	for i := uint64(0); i < uint64(f.k); i++ {
		f.bits.Set((h1 + i*h2) % f.m)
	}
}

// Has reports whether every hashed bit for value is set.  False means
// the value was definitely never added; true means it probably was.
func (f *Filter) Has(value string) bool {
	h1, h2 := f.hashPair(value)
	for i := uint64(0); i < uint64(f.k); i++ {
		if !f.bits.IsSet((h1 + i*h2) % f.m) {
			return false
		}
	}
	return true
}

// Reset clears every bit so the filter can be reused for a new build.
func (f *Filter) Reset() {
	zero.Bytes(f.bits.Bytes())
}

// Bytes returns the raw bit array, ceil(m/8) bytes, bit 0 at the most
// significant bit of byte 0.
func (f *Filter) Bytes() []byte {
	return f.bits.Bytes()
}

// Base64 renders the bit array in standard base64.  With the default
// sizing m is a multiple of 24, so the encoding has no padding.
func (f *Filter) Base64() string {
	return base64.StdEncoding.EncodeToString(f.bits.Bytes())
}

// M returns the bit size of the filter.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of hash positions per element.
func (f *Filter) K() int { return f.k }

// Seed returns the base hash seed.
func (f *Filter) Seed() uint64 { return f.seed }
