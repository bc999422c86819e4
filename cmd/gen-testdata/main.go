// Copyright 2023 The pathmap Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata fabricates a catalog-shaped corpus of paths and writes
// a pathmap file plus its Bloom filter sidecar, for use in benchmarks
// and manual poking.
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"

	"github.com/pathmap/pathmap"
	"github.com/pathmap/pathmap/bloom"
)

const (
	nPaths    = 100000
	suffixLen = 8

	outPath      = "testdata.large.pathmap"
	outBloomPath = "testdata.large.bloom"
)

var categories = []string{"women", "men", "kids", "sale", "poems"}
var kinds = []string{"trousers", "shirts", "shoes", "hats"}

func newRand() *rand.Rand {
	var seedBytes [8]byte
	crand.Read(seedBytes[:])
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
	return rand.New(rand.NewSource(seed))
}

func main() {
	rng := newRand()

	builder := pathmap.NewBuilder()
	filter, err := bloom.New(bloom.Config{N: nPaths, P: 0.01})
	if err != nil {
		panic(err)
	}

	for i := 0; i < nPaths; i++ {
		var buf [suffixLen / 2]byte
		if _, err := rng.Read(buf[:]); err != nil {
			panic(err)
		}
		path := fmt.Sprintf("/%s/%s/%x",
			categories[rng.Intn(len(categories))],
			kinds[rng.Intn(len(kinds))],
			buf)
		if err := builder.Insert(path, float64(rng.Intn(1000))); err != nil {
			panic(err)
		}
		filter.Add(path)
	}

	if err := builder.WriteFile(outPath); err != nil {
		panic(err)
	}
	if err := os.WriteFile(outBloomPath, []byte(filter.Base64()), 0644); err != nil {
		panic(err)
	}

	fmt.Printf("wrote %s (%d paths) and %s\n", outPath, builder.Len(), outBloomPath)
}
