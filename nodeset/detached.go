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
	"github.com/erigontech/fastset/intset"
	"github.com/erigontech/fastset/tree"
)

// DetachedSubtree is the record produced by RemoveSubtree: an owned
// snapshot of every node's direct and subtree entries across a tree
// subtree, suitable for later reinsertion at a different tree location via
// InsertSubtree.
type DetachedSubtree struct {
	nodes   []uint32
	direct  map[uint32]intset.Owned
	subtree map[uint32]intset.Owned
}

// RemoveSubtree evacuates every node in root's descendants-with-self (as
// seen through baseTree/logTree) out of the live direct/subtree state and
// into a returned record. The live entries become absent (overridden empty
// in the log); base itself is untouched until Apply.
func (l *Log) RemoveSubtree(base *Base, baseTree *tree.Base, logTree *tree.Log, root uint32) DetachedSubtree {
	l.guard.Bind(base)
	nodes := logTree.DescendantsWithSelf(baseTree, root)
	rec := DetachedSubtree{
		nodes:   nodes,
		direct:  make(map[uint32]intset.Owned, len(nodes)),
		subtree: make(map[uint32]intset.Owned, len(nodes)),
	}
	for _, n := range nodes {
		rec.direct[n] = l.direct.COW(&base.direct, n).Clone()
		l.direct.SetOverride(n, intset.NewOwned())

		rec.subtree[n] = l.subtree.COW(&base.subtree, n).Clone()
		l.subtree.SetOverride(n, intset.NewOwned())
	}
	return rec
}

// InsertSubtree installs every node's direct and subtree entry from rec
// back into the log, then extends the subtree aggregate of every
// ancestor-with-self of rec's root's new parent with the reattached root's
// subtree items. Call it after the tree itself has been reparented to
// root's new location.
func (l *Log) InsertSubtree(base *Base, baseTree *tree.Base, logTree *tree.Log, rec DetachedSubtree) {
	l.guard.Bind(base)
	for _, n := range rec.nodes {
		l.direct.SetOverride(n, rec.direct[n])
		l.subtree.SetOverride(n, rec.subtree[n])
	}
	if len(rec.nodes) == 0 {
		return
	}
	root := rec.nodes[0]
	items := rec.subtree[root].Bitmap()

	parent, has := logTree.Parent(baseTree, root)
	if !has {
		return
	}
	walkAncestorsWithSelf(baseTree, logTree, parent, func(a uint32) {
		l.subtree.COW(&base.subtree, a).Union(items)
	})
}
