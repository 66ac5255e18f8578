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

// Package typed supplies a thin, opt-in bijection layer over fastset's raw
// uint32 key and item space. Every index in fastset operates on uint32
// natively; application code almost always has its own newtype-style ID
// (a block number, an account index, a node handle) that happens to fit in
// 32 bits. Typed wraps the raw indexes with a Codec that translates at the
// boundary, so callers never sprinkle uint32(x) conversions through their
// own code.
package typed

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Codec translates between an application-level identifier type K and the
// uint32 space fastset's indexes store internally. Encode must be
// injective: distinct K values must encode to distinct uint32 values, or
// the underlying index will silently conflate them.
type Codec[K any] struct {
	Encode func(K) uint32
	Decode func(uint32) K
}

// OfInteger builds a Codec for any K whose underlying type is uint32, such
// as a distinct defined type `type AccountID uint32`.
func OfInteger[K ~uint32]() Codec[K] {
	return Codec[K]{
		Encode: func(k K) uint32 { return uint32(k) },
		Decode: func(u uint32) K { return K(u) },
	}
}

// OfUnsigned builds a Codec for a wider unsigned integer type (uint64, for
// instance an auto-incrementing row ID) that is only known to fit in 32
// bits by convention rather than by its Go type. Encode panics if k
// overflows uint32: callers that cannot guarantee the range invariant
// should validate before calling into a typed index.
func OfUnsigned[K constraints.Unsigned]() Codec[K] {
	return Codec[K]{
		Encode: func(k K) uint32 {
			if uint64(k) > uint64(^uint32(0)) {
				panic(fmt.Sprintf("fastset/typed: value %d does not fit in uint32", uint64(k)))
			}
			return uint32(k)
		},
		Decode: func(u uint32) K { return K(u) },
	}
}
