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

import "github.com/erigontech/fastset/oneindex"

// OneIndex is a typed façade over oneindex.Base, translating keys of type
// K through codec while leaving the stored value type V untouched.
type OneIndex[K any, V comparable] struct {
	Base  *oneindex.Base[V]
	codec Codec[K]
}

// NewOneIndex wraps an empty oneindex.Base.
func NewOneIndex[K any, V comparable](codec Codec[K]) OneIndex[K, V] {
	return OneIndex[K, V]{Base: oneindex.New[V](), codec: codec}
}

// Get returns the value stored at key, if any.
func (t OneIndex[K, V]) Get(key K) (V, bool) {
	return t.Base.Get(t.codec.Encode(key))
}

// OneIndexBuilder is a typed façade over oneindex.Builder.
type OneIndexBuilder[K any, V comparable] struct {
	builder *oneindex.Builder[V]
	codec   Codec[K]
}

// NewOneIndexBuilder wraps a Builder over base using codec.
func NewOneIndexBuilder[K any, V comparable](base *oneindex.Base[V], codec Codec[K]) OneIndexBuilder[K, V] {
	return OneIndexBuilder[K, V]{builder: oneindex.NewBuilder(base), codec: codec}
}

// Get reads key through the builder's pending log.
func (t OneIndexBuilder[K, V]) Get(key K) (V, bool) {
	return t.builder.Get(t.codec.Encode(key))
}

// Set stages key to hold v.
func (t OneIndexBuilder[K, V]) Set(key K, v V) {
	t.builder.Set(t.codec.Encode(key), v)
}

// Clear stages key to be cleared.
func (t OneIndexBuilder[K, V]) Clear(key K) {
	t.builder.Clear(t.codec.Encode(key))
}

// Build applies the pending log and returns a typed view of the result.
func (t OneIndexBuilder[K, V]) Build() (OneIndex[K, V], bool) {
	base, changed := t.builder.Build()
	return OneIndex[K, V]{Base: base, codec: t.codec}, changed
}
