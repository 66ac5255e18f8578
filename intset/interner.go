// Copyright 2024 The fastset Authors
// This file is part of fastset.
//
// fastset is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fastset is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fastset. If not, see <http://www.gnu.org/licenses/>.

// Package intset implements the shared u32 set payload used by every index
// in fastset: an owned, mutable representation for logs and an interned,
// reference-counted, immutable representation for bases.
//
// Interning deduplicates equal-valued sets across bases: any two bases that
// happen to hold the same set of uint32s share one underlying allocation.
// The interner is a single process-wide table guarded by one mutex;
// hashing and bitmap construction happen outside the critical section,
// while the equality check against same-hash entries happens inside it.
package intset

import (
	"log/slog"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
)

// logger receives debug-level diagnostics about interner churn: new
// payloads created and payloads freed. It is silent by default; callers
// that want visibility into interning behavior (e.g. while chasing a
// memory leak from an unreleased Handle) can point it at their own
// handler with SetLogger.
var logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// SetLogger directs the interner's debug diagnostics to l. Pass nil to
// silence them again.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	logger = l
}

// entry is one interned payload. refs is the number of live Handles
// pointing at it; it is mutated only while the interner mutex is held.
type entry struct {
	bm   *roaring.Bitmap
	hash uint64
	refs int64
}

type interner struct {
	mu sync.Mutex
	// buckets groups entries by content hash; a slice per bucket handles
	// hash collisions, which are rare for xxhash over serialized bitmaps.
	buckets map[uint64][]*entry
}

var global = &interner{buckets: make(map[uint64][]*entry)}

// contentHash computes an order-invariant hash of bm's contents. Roaring
// bitmaps normalize their container layout regardless of insertion order,
// so hashing the canonical serialized form satisfies the interner's hash
// contract (consistent with Equals) without an explicit per-element
// XOR-fold.
func contentHash(bm *roaring.Bitmap) uint64 {
	b, err := bm.ToBytes()
	if err != nil {
		// Serialization of an in-memory roaring bitmap cannot fail; a
		// failure here means memory corruption or a broken invariant.
		panic("fastset/intset: failed to serialize bitmap: " + err.Error())
	}
	return xxhash.Sum64(b)
}

// intern finds or creates the entry for bm's value. bm is consumed: the
// caller must not mutate it afterwards. Hashing happens before the mutex is
// taken; the critical section is a bucket lookup, a bitmap equality check
// against each entry sharing the hash, and either a refcount bump or a
// slice append.
func (in *interner) intern(bm *roaring.Bitmap) *entry {
	h := contentHash(bm)

	in.mu.Lock()
	defer in.mu.Unlock()

	for _, e := range in.buckets[h] {
		if e.bm.Equals(bm) {
			e.refs++
			return e
		}
	}

	e := &entry{bm: bm, hash: h, refs: 1}
	in.buckets[h] = append(in.buckets[h], e)
	logger.Debug("fastset/intset: new payload interned", "hash", h, "cardinality", bm.GetCardinality())
	return e
}

func (in *interner) retain(e *entry) {
	in.mu.Lock()
	e.refs++
	in.mu.Unlock()
}

func (in *interner) release(e *entry) {
	in.mu.Lock()
	defer in.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	if e.refs < 0 {
		panic("fastset/intset: handle released more times than interned")
	}

	bucket := in.buckets[e.hash]
	for i, candidate := range bucket {
		if candidate == e {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(in.buckets, e.hash)
	} else {
		in.buckets[e.hash] = bucket
	}
}

// liveStats reports the number of distinct interned values and the sum of
// their refcounts, for diagnostics (see RegisterMetrics).
func (in *interner) liveStats() (entries int, totalRefs int64) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, bucket := range in.buckets {
		entries += len(bucket)
		for _, e := range bucket {
			totalRefs += e.refs
		}
	}
	return entries, totalRefs
}

var emptyOnce sync.Once
var emptyEntry *entry

func defaultEmptyEntry() *entry {
	emptyOnce.Do(func() {
		emptyEntry = global.intern(roaring.New())
	})
	return emptyEntry
}
