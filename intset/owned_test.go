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
)

func TestOwnedAddRemove(t *testing.T) {
	o := NewOwned()
	assert.True(t, o.Add(1))
	assert.False(t, o.Add(1), "adding an existing element reports no change")
	assert.True(t, o.Contains(1))
	assert.True(t, o.Remove(1))
	assert.False(t, o.Remove(1), "removing an absent element reports no change")
	assert.True(t, o.IsEmpty())
}

func TestOwnedFromHandleIsIndependent(t *testing.T) {
	h := Intern(FromSlice([]uint32{1, 2}).Bitmap())
	defer h.Release()

	o := FromHandle(h)
	o.Add(3)

	assert.True(t, o.Contains(3))
	assert.False(t, h.Contains(3), "mutating the copy must not affect the interned value")
}

func TestOwnedBulkOps(t *testing.T) {
	rhs := FromSlice([]uint32{2, 3, 4})

	union := FromSlice([]uint32{1, 2})
	union.Union(rhs.Bitmap())
	assert.ElementsMatch(t, []uint32{1, 2, 3, 4}, union.ToSlice())

	inter := FromSlice([]uint32{1, 2, 3})
	inter.Intersect(rhs.Bitmap())
	assert.ElementsMatch(t, []uint32{2, 3}, inter.ToSlice())

	diff := FromSlice([]uint32{1, 2, 3})
	diff.Difference(rhs.Bitmap())
	assert.ElementsMatch(t, []uint32{1}, diff.ToSlice())
}
