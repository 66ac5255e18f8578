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

import "github.com/erigontech/fastset/flatset"

// FlatSet is a typed façade over flatset.Base: keys translate through
// keyCodec, set members translate through itemCodec. Two independent
// codecs are used because a key space (say, account index) and an item
// space (say, storage slot) are rarely the same type.
type FlatSet[K, I any] struct {
	Base      *flatset.Base
	keyCodec  Codec[K]
	itemCodec Codec[I]
}

// NewFlatSet wraps an empty flatset.Base.
func NewFlatSet[K, I any](keyCodec Codec[K], itemCodec Codec[I]) FlatSet[K, I] {
	return FlatSet[K, I]{Base: flatset.New(), keyCodec: keyCodec, itemCodec: itemCodec}
}

// Get returns key's set as a typed view.
func (t FlatSet[K, I]) Get(key K) HandleView[I] {
	return WrapHandle(t.Base.Get(t.keyCodec.Encode(key)), t.itemCodec)
}

// Contains reports whether item is a member of key's set.
func (t FlatSet[K, I]) Contains(key K, item I) bool {
	return t.Base.Contains(t.keyCodec.Encode(key), t.itemCodec.Encode(item))
}

// FlatSetBuilder is a typed façade over flatset.Builder.
type FlatSetBuilder[K, I any] struct {
	builder   *flatset.Builder
	keyCodec  Codec[K]
	itemCodec Codec[I]
}

// NewFlatSetBuilder wraps a Builder over base using keyCodec and itemCodec.
func NewFlatSetBuilder[K, I any](base *flatset.Base, keyCodec Codec[K], itemCodec Codec[I]) FlatSetBuilder[K, I] {
	return FlatSetBuilder[K, I]{builder: flatset.NewBuilder(base), keyCodec: keyCodec, itemCodec: itemCodec}
}

// Insert adds item to key's bucket. Reports whether it changed.
func (t FlatSetBuilder[K, I]) Insert(key K, item I) bool {
	return t.builder.Insert(t.keyCodec.Encode(key), t.itemCodec.Encode(item))
}

// Remove deletes item from key's bucket. Reports whether it changed.
func (t FlatSetBuilder[K, I]) Remove(key K, item I) bool {
	return t.builder.Remove(t.keyCodec.Encode(key), t.itemCodec.Encode(item))
}

// Get returns key's effective set as a fresh, decoded slice.
func (t FlatSetBuilder[K, I]) Get(key K) []I {
	raw := t.builder.Get(t.keyCodec.Encode(key))
	out := make([]I, len(raw))
	for i, v := range raw {
		out[i] = t.itemCodec.Decode(v)
	}
	return out
}

// Build applies the pending log and returns a typed view of the result.
func (t FlatSetBuilder[K, I]) Build() (FlatSet[K, I], bool) {
	base, changed := t.builder.Build()
	return FlatSet[K, I]{Base: base, keyCodec: t.keyCodec, itemCodec: t.itemCodec}, changed
}
