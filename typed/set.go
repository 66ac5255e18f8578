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

package typed

import "github.com/erigontech/fastset/intset"

// Set is a typed view of an Owned working set: every read and write
// translates K through codec at the boundary. It holds no state of its
// own; it is a cheap wrapper constructed around an existing Owned.
type Set[K any] struct {
	owned intset.Owned
	codec Codec[K]
}

// WrapOwned returns a typed view of owned using codec.
func WrapOwned[K any](owned intset.Owned, codec Codec[K]) Set[K] {
	return Set[K]{owned: owned, codec: codec}
}

// NewSet returns an empty typed working set.
func NewSet[K any](codec Codec[K]) Set[K] {
	return Set[K]{owned: intset.NewOwned(), codec: codec}
}

// Contains reports whether k is a member of the set.
func (s Set[K]) Contains(k K) bool {
	return s.owned.Contains(s.codec.Encode(k))
}

// Insert adds k, reporting whether the set changed.
func (s Set[K]) Insert(k K) bool {
	return s.owned.Add(s.codec.Encode(k))
}

// Remove deletes k, reporting whether the set changed.
func (s Set[K]) Remove(k K) bool {
	return s.owned.Remove(s.codec.Encode(k))
}

// Len returns the number of elements in the set.
func (s Set[K]) Len() uint64 {
	return s.owned.Len()
}

// IsEmpty reports whether the set has no elements.
func (s Set[K]) IsEmpty() bool {
	return s.owned.IsEmpty()
}

// ToSlice decodes every element of the set into K, in unspecified order.
func (s Set[K]) ToSlice() []K {
	raw := s.owned.ToSlice()
	out := make([]K, len(raw))
	for i, v := range raw {
		out[i] = s.codec.Decode(v)
	}
	return out
}

// Owned exposes the underlying untyped working set, for composition with
// the rest of fastset (interning, bulk bitmap operations).
func (s Set[K]) Owned() intset.Owned {
	return s.owned
}

// HandleView is a typed view of a borrowed or owned Handle, for read-only
// access (e.g. a committed Base entry).
type HandleView[K any] struct {
	handle intset.Handle
	codec  Codec[K]
}

// WrapHandle returns a typed view of handle using codec.
func WrapHandle[K any](handle intset.Handle, codec Codec[K]) HandleView[K] {
	return HandleView[K]{handle: handle, codec: codec}
}

// Contains reports whether k is a member of the set.
func (v HandleView[K]) Contains(k K) bool {
	return v.handle.Contains(v.codec.Encode(k))
}

// Len returns the number of elements in the set.
func (v HandleView[K]) Len() uint64 {
	return v.handle.Len()
}

// ToSlice decodes every element of the set into K, in unspecified order.
func (v HandleView[K]) ToSlice() []K {
	raw := v.handle.ToSlice()
	out := make([]K, len(raw))
	for i, x := range raw {
		out[i] = v.codec.Decode(x)
	}
	return out
}
