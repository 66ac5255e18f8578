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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDedup(t *testing.T) {
	entries, refs := global.liveStats()

	a := Intern(FromSlice([]uint32{1, 2, 3}).Bitmap())
	b := Intern(FromSlice([]uint32{3, 2, 1}).Bitmap())

	require.True(t, a.Equal(b), "equal-valued sets must share one allocation")

	gotEntries, gotRefs := global.liveStats()
	assert.Equal(t, entries+1, gotEntries)
	assert.Equal(t, refs+2, gotRefs)

	a.Release()
	_, gotRefs = global.liveStats()
	assert.Equal(t, refs+1, gotRefs)

	b.Release()
	gotEntries, gotRefs = global.liveStats()
	assert.Equal(t, entries, gotEntries, "payload must be freed once all handles are released")
	assert.Equal(t, refs, gotRefs)
}

func TestInternDistinctValues(t *testing.T) {
	a := Intern(FromSlice([]uint32{1, 2}).Bitmap())
	defer a.Release()
	b := Intern(FromSlice([]uint32{1, 2, 3}).Bitmap())
	defer b.Release()

	assert.False(t, a.Equal(b))
}

func TestCloneBumpsRefcount(t *testing.T) {
	_, refs := global.liveStats()

	h := Intern(FromSlice([]uint32{42}).Bitmap())
	c := h.Clone()

	_, gotRefs := global.liveStats()
	assert.Equal(t, refs+2, gotRefs)

	h.Release()
	c.Release()
	_, gotRefs = global.liveStats()
	assert.Equal(t, refs, gotRefs)
}

func TestReleasePastZeroPanics(t *testing.T) {
	h := Intern(FromSlice([]uint32{7}).Bitmap())
	h.Release()
	assert.Panics(t, func() { h.Release() })
}

func TestEmptySingletonIsShared(t *testing.T) {
	a := Empty()
	defer a.Release()
	b := Intern(NewOwned().Bitmap())
	defer b.Release()

	assert.True(t, a.Equal(b))
}
