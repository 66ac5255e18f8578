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

package intset

import "github.com/RoaringBitmap/roaring/v2"

// Handle is a reference-counted, immutable view of an interned set. Bases
// hold Handles. A Handle obtained from Intern or Clone must eventually be
// released with Release, or the payload leaks for the life of the process.
//
// The zero Handle is not valid; use Empty() for an interned empty set.
type Handle struct {
	e *entry
}

// Intern returns the Handle for bm's value, creating a new interned payload
// if no equal-valued one already exists. bm is consumed: the caller must
// not read or mutate it after calling Intern.
func Intern(bm *roaring.Bitmap) Handle {
	return Handle{e: global.intern(bm)}
}

// Empty returns an owned Handle to the process-wide interned empty set,
// suitable for storing in a container (its refcount is bumped). Release it
// like any other owned Handle once it is no longer held.
func Empty() Handle {
	e := defaultEmptyEntry()
	global.retain(e)
	return Handle{e: e}
}

// EmptyRef returns a borrowed Handle to the process-wide interned empty
// set, for read-only use (e.g. reporting an absent key as an empty set).
// Its refcount is not bumped: the caller must not call Release on it and
// must not store it anywhere that will later call Release.
func EmptyRef() Handle {
	return Handle{e: defaultEmptyEntry()}
}

// Clone returns a new Handle aliasing the same payload, bumping its
// refcount. It is cheap (a mutex-guarded increment).
func (h Handle) Clone() Handle {
	global.retain(h.e)
	return Handle{e: h.e}
}

// Release decrements the payload's refcount. Once every Handle to a value
// has been released, the payload is removed from the interner and freed.
func (h Handle) Release() {
	global.release(h.e)
}

// Bitmap returns the underlying immutable bitmap. Callers must not mutate
// the returned value; it is shared with every other Handle to the same
// value.
func (h Handle) Bitmap() *roaring.Bitmap {
	return h.e.bm
}

// Contains reports whether x is a member of the set.
func (h Handle) Contains(x uint32) bool {
	return h.e.bm.Contains(x)
}

// Len returns the number of elements in the set.
func (h Handle) Len() uint64 {
	return h.e.bm.GetCardinality()
}

// IsEmpty reports whether the set has no elements.
func (h Handle) IsEmpty() bool {
	return h.e.bm.IsEmpty()
}

// ToSlice returns the set's elements. The result is a fresh slice; it is
// safe for the caller to retain and mutate it.
func (h Handle) ToSlice() []uint32 {
	return h.e.bm.ToArray()
}

// Equal reports whether h and other hold the same value. Because the
// interner deduplicates by value (the uniqueness invariant), this is a
// pointer comparison of the underlying entry and is O(1).
func (h Handle) Equal(other Handle) bool {
	return h.e == other.e
}

// EqualBitmap reports whether h's value equals bm's contents.
func (h Handle) EqualBitmap(bm *roaring.Bitmap) bool {
	return h.e.bm.Equals(bm)
}

// Valid reports whether h was produced by Intern/Empty/Clone, as opposed to
// being a zero Handle.
func (h Handle) Valid() bool {
	return h.e != nil
}
