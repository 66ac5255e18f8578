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

// Owned is a mutable set of uint32, used by Logs to hold copy-on-write
// working copies of set payloads. Unlike Handle, it is not shared and
// carries no refcount.
type Owned struct {
	bm *roaring.Bitmap
}

// NewOwned returns an empty owned set.
func NewOwned() Owned {
	return Owned{bm: roaring.New()}
}

// FromHandle returns an owned copy of h's value, suitable for copy-on-write
// mutation without affecting the interned payload h refers to.
func FromHandle(h Handle) Owned {
	return Owned{bm: h.Bitmap().Clone()}
}

// FromSlice returns an owned set containing the given elements.
func FromSlice(xs []uint32) Owned {
	o := NewOwned()
	o.bm.AddMany(xs)
	return o
}

// Clone returns an independent copy of o.
func (o Owned) Clone() Owned {
	return Owned{bm: o.bm.Clone()}
}

// Add inserts x, reporting whether the set changed.
func (o Owned) Add(x uint32) bool {
	return o.bm.CheckedAdd(x)
}

// Remove deletes x, reporting whether the set changed.
func (o Owned) Remove(x uint32) bool {
	return o.bm.CheckedRemove(x)
}

// Contains reports whether x is a member of the set.
func (o Owned) Contains(x uint32) bool {
	return o.bm.Contains(x)
}

// Len returns the number of elements in the set.
func (o Owned) Len() uint64 {
	return o.bm.GetCardinality()
}

// IsEmpty reports whether the set has no elements.
func (o Owned) IsEmpty() bool {
	return o.bm.IsEmpty()
}

// ToSlice returns the set's elements as a fresh slice.
func (o Owned) ToSlice() []uint32 {
	return o.bm.ToArray()
}

// Union replaces o's contents with o ∪ rhs.
func (o Owned) Union(rhs *roaring.Bitmap) {
	o.bm.Or(rhs)
}

// Intersect replaces o's contents with o ∩ rhs.
func (o Owned) Intersect(rhs *roaring.Bitmap) {
	o.bm.And(rhs)
}

// Difference replaces o's contents with o \ rhs.
func (o Owned) Difference(rhs *roaring.Bitmap) {
	o.bm.AndNot(rhs)
}

// EqualHandle reports whether o's value equals h's value.
func (o Owned) EqualHandle(h Handle) bool {
	return o.bm.Equals(h.Bitmap())
}

// Bitmap exposes the underlying mutable bitmap for composition with
// package roaring's bulk operators. Callers within fastset may mutate it;
// external callers should treat it as read-only unless they own the Owned
// value.
func (o Owned) Bitmap() *roaring.Bitmap {
	return o.bm
}

// Intern moves o's value into the interner, returning a Handle. o must not
// be used afterwards.
func (o Owned) Intern() Handle {
	return Intern(o.bm)
}
