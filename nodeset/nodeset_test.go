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

package nodeset

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/fastset/tree"
)

// checkSubtreeCoverage verifies that every node's subtree set equals the
// union of direct items over its descendants-with-self.
func checkSubtreeCoverage(t *testing.T, base *Base, treeBase *tree.Base) {
	t.Helper()
	treeLog := tree.NewLog()
	for _, n := range treeBase.AllNodes().ToArray() {
		expected := roaring.New()
		for _, d := range treeLog.DescendantsWithSelf(treeBase, n) {
			expected.Or(base.Direct(d).Bitmap())
		}
		assert.ElementsMatch(t, expected.ToArray(), base.Subtree(n).ToSlice(),
			"subtree coverage violated at node %d", n)
	}
}

func TestInsertPropagatesToAncestors(t *testing.T) {
	treeBase := tree.New()
	tb := tree.NewBuilder(treeBase)
	tb.Insert(1, 2)
	tb.Insert(2, 3)
	treeBase, _ = tb.Build()

	base := New()
	b := NewBuilder(base)
	changed := b.Insert(treeBase, tree.NewLog(), 3, 100)
	require.True(t, changed)
	base, _ = b.Build()

	assert.ElementsMatch(t, []uint32{100}, base.Direct(3).ToSlice())
	assert.ElementsMatch(t, []uint32{100}, base.Subtree(1).ToSlice())
	assert.ElementsMatch(t, []uint32{100}, base.Subtree(2).ToSlice())
	assert.ElementsMatch(t, []uint32{100}, base.Subtree(3).ToSlice())
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	treeBase := tree.New()
	base := New()
	b := NewBuilder(base)
	changed := b.Remove(treeBase, tree.NewLog(), 1, 42)
	assert.False(t, changed)
}

func TestRemoveSubtreeThenInsertSubtreeAcrossReparent(t *testing.T) {
	// Build 1 -> 2 -> 3.
	treeBase := tree.New()
	tb := tree.NewBuilder(treeBase)
	tb.Insert(1, 2)
	tb.Insert(2, 3)
	treeBase, _ = tb.Build()

	base := New()
	b := NewBuilder(base)
	b.Insert(treeBase, tree.NewLog(), 3, 100)
	base, _ = b.Build()
	require.ElementsMatch(t, []uint32{100}, base.Subtree(1).ToSlice())

	// Detach the subtree rooted at 2.
	nodesetLog := NewLog()
	rec := nodesetLog.RemoveSubtree(base, treeBase, tree.NewLog(), 2)

	// Reparent: 1 -> 4 -> 2 -> 3.
	tb2 := tree.NewBuilder(treeBase)
	tb2.Insert(1, 4)
	tb2.Insert(4, 2)
	treeBase, _ = tb2.Build()

	nodesetLog.InsertSubtree(base, treeBase, tree.NewLog(), rec)
	changed := base.Apply(nodesetLog)
	require.True(t, changed)

	assert.ElementsMatch(t, []uint32{100}, base.Subtree(1).ToSlice())
	assert.ElementsMatch(t, []uint32{100}, base.Subtree(4).ToSlice())
	assert.ElementsMatch(t, []uint32{100}, base.Subtree(2).ToSlice())
	assert.ElementsMatch(t, []uint32{100}, base.Direct(3).ToSlice())
}

func TestSubtreeCoverageInvariant(t *testing.T) {
	// 1 -> {2, 3}, 2 -> 4
	treeBase := tree.New()
	tb := tree.NewBuilder(treeBase)
	tb.Insert(1, 2)
	tb.Insert(1, 3)
	tb.Insert(2, 4)
	treeBase, _ = tb.Build()

	base := New()
	b := NewBuilder(base)
	b.Insert(treeBase, tree.NewLog(), 4, 100)
	b.Insert(treeBase, tree.NewLog(), 3, 101)
	b.Insert(treeBase, tree.NewLog(), 2, 102)
	base, _ = b.Build()
	checkSubtreeCoverage(t, base, treeBase)

	b2 := NewBuilder(base)
	b2.Remove(treeBase, tree.NewLog(), 2, 102)
	base, _ = b2.Build()
	checkSubtreeCoverage(t, base, treeBase)
}

func TestInsertPropagatesThroughCycle(t *testing.T) {
	// 1 -> 2 -> 3, closed into a cycle by making 1 a child of 3.
	treeBase := tree.New()
	tb := tree.NewBuilder(treeBase)
	tb.Insert(1, 2)
	tb.Insert(2, 3)
	tb.Insert(3, 1)
	treeBase, _ = tb.Build()
	require.True(t, treeBase.IsCycleNode(1))

	base := New()
	b := NewBuilder(base)
	b.Insert(treeBase, tree.NewLog(), 2, 9)
	base, _ = b.Build()

	// An item below a cycle belongs to the subtree aggregate of every node
	// on it; the walk is bounded by revisits, not by cycle marks.
	assert.ElementsMatch(t, []uint32{9}, base.Subtree(1).ToSlice())
	assert.ElementsMatch(t, []uint32{9}, base.Subtree(2).ToSlice())
	assert.ElementsMatch(t, []uint32{9}, base.Subtree(3).ToSlice())
}

func TestValuesUnionsDirectItems(t *testing.T) {
	treeBase := tree.New()
	tb := tree.NewBuilder(treeBase)
	tb.Insert(1, 2)
	treeBase, _ = tb.Build()

	base := New()
	b := NewBuilder(base)
	b.Insert(treeBase, tree.NewLog(), 1, 10)
	b.Insert(treeBase, tree.NewLog(), 2, 20)
	base, _ = b.Build()

	assert.ElementsMatch(t, []uint32{10, 20}, base.Values().ToArray())
}

func TestApplyIdempotentOnEmptyLog(t *testing.T) {
	base := New()
	changed := base.Apply(NewLog())
	assert.False(t, changed)
}

func TestTxViewReadThrough(t *testing.T) {
	treeBase := tree.New()
	base := New()
	log := NewLog()
	log.Insert(base, treeBase, tree.NewLog(), 1, 7)

	tx := NewTxView(base, log)
	assert.ElementsMatch(t, []uint32{7}, tx.Direct(1))
	assert.ElementsMatch(t, []uint32{7}, tx.Subtree(1))
}
