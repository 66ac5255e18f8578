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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountID uint32

func TestOfIntegerCodecRoundTrips(t *testing.T) {
	codec := OfInteger[accountID]()
	assert.Equal(t, uint32(42), codec.Encode(accountID(42)))
	assert.Equal(t, accountID(42), codec.Decode(42))
}

func TestOfUnsignedPanicsOnOverflow(t *testing.T) {
	codec := OfUnsigned[uint64]()
	assert.Equal(t, uint32(7), codec.Encode(uint64(7)))
	assert.Panics(t, func() { codec.Encode(uint64(1) << 40) })
}

func TestSetInsertContainsRemove(t *testing.T) {
	codec := OfInteger[accountID]()
	s := NewSet(codec)
	require.True(t, s.Insert(accountID(5)))
	assert.True(t, s.Contains(accountID(5)))
	assert.ElementsMatch(t, []accountID{5}, s.ToSlice())
	require.True(t, s.Remove(accountID(5)))
	assert.False(t, s.Contains(accountID(5)))
}

func TestTypedOneIndex(t *testing.T) {
	codec := OfInteger[accountID]()
	base := NewOneIndex[accountID, string](codec)
	b := NewOneIndexBuilder[accountID, string](base.Base, codec)
	b.Set(accountID(1), "alice")
	typedBase, changed := b.Build()
	require.True(t, changed)

	v, ok := typedBase.Get(accountID(1))
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestTypedFlatSet(t *testing.T) {
	keyCodec := OfInteger[accountID]()
	itemCodec := OfInteger[accountID]()
	base := NewFlatSet[accountID, accountID](keyCodec, itemCodec)
	b := NewFlatSetBuilder[accountID, accountID](base.Base, keyCodec, itemCodec)
	b.Insert(accountID(1), accountID(100))
	typedBase, changed := b.Build()
	require.True(t, changed)

	assert.True(t, typedBase.Contains(accountID(1), accountID(100)))
	assert.ElementsMatch(t, []accountID{100}, typedBase.Get(accountID(1)).ToSlice())
}
