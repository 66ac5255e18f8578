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

package oneindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicInsertAndApply(t *testing.T) {
	base := New[string]()
	b := NewBuilder(base)
	b.Set(7, "a")
	b.Set(3, "b")

	base, changed := b.Build()
	require.True(t, changed)

	v, ok := base.Get(7)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = base.Get(3)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	assert.Equal(t, 2, base.Len())

	b2 := NewBuilder(base)
	b2.Set(7, "a")
	_, changed = b2.Build()
	assert.False(t, changed, "re-setting the same value must not report a change")
}

func TestClearVacantIsNoop(t *testing.T) {
	base := New[int]()
	b := NewBuilder(base)
	b.Clear(5)
	_, changed := b.Build()
	assert.False(t, changed)
}

func TestClearOccupiedDecrementsLen(t *testing.T) {
	base := New[int]()
	b := NewBuilder(base)
	b.Set(1, 10)
	base, _ = b.Build()
	assert.Equal(t, 1, base.Len())

	b2 := NewBuilder(base)
	b2.Clear(1)
	base, changed := b2.Build()
	assert.True(t, changed)
	assert.Equal(t, 0, base.Len())
	_, ok := base.Get(1)
	assert.False(t, ok)
}

func TestTxViewReadThrough(t *testing.T) {
	base := New[string]()
	b := NewBuilder(base)
	b.Set(1, "x")
	base, _ = b.Build()

	log := NewLog[string]()
	log.Set(base, 1, "y")
	log.Set(base, 2, "z")

	tx := NewTxView(base, log)
	v, ok := tx.Get(1)
	require.True(t, ok)
	assert.Equal(t, "y", v)

	v, ok = tx.Get(2)
	require.True(t, ok)
	assert.Equal(t, "z", v)

	// Unoverridden key reads through untouched.
	v, ok = tx.Get(99)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestApplyIdempotentOnEmptyLog(t *testing.T) {
	base := New[int]()
	b := NewBuilder(base)
	b.Set(1, 1)
	base, _ = b.Build()

	emptyLog := NewLog[int]()
	changed := base.Apply(emptyLog)
	assert.False(t, changed)
}

func TestRangeOrdersByKey(t *testing.T) {
	base := New[int]()
	b := NewBuilder(base)
	b.Set(5, 50)
	b.Set(1, 10)
	b.Set(3, 30)
	base, _ = b.Build()

	var keys []uint32
	base.Range(func(key uint32, value int) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []uint32{1, 3, 5}, keys)
}

func TestCloneIsIndependent(t *testing.T) {
	base := New[int]()
	b := NewBuilder(base)
	b.Set(1, 1)
	base, _ = b.Build()

	clone := base.Clone()
	b2 := NewBuilder(clone)
	b2.Set(1, 2)
	clone, _ = b2.Build()

	v, _ := base.Get(1)
	assert.Equal(t, 1, v)
	v, _ = clone.Get(1)
	assert.Equal(t, 2, v)
}
