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

// Log is a write-once delta over a specific Base.
type Log struct {
	guard   intset.Guard
	direct  intset.StoreLog
	subtree intset.StoreLog
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{direct: intset.NewStoreLog(), subtree: intset.NewStoreLog()}
}

// NewLogWithCapacity returns an empty Log pre-sized for capacity touched
// nodes.
func NewLogWithCapacity(capacity int) *Log {
	return &Log{
		direct:  intset.NewStoreLogWithCapacity(capacity),
		subtree: intset.NewStoreLogWithCapacity(capacity),
	}
}

// Direct returns n's effective directly-inserted items as a fresh slice.
func (l *Log) Direct(base *Base, n uint32) []uint32 {
	l.guard.Bind(base)
	return l.direct.ReadBitmap(&base.direct, n).ToArray()
}

// Subtree returns n's effective subtree-aggregated items as a fresh slice.
func (l *Log) Subtree(base *Base, n uint32) []uint32 {
	l.guard.Bind(base)
	return l.subtree.ReadBitmap(&base.subtree, n).ToArray()
}

// walkAncestorsWithSelf calls f for node and then for each ancestor,
// following raw parent pointers through the combined tree view. Unlike the
// tree's own Ancestors it does not stop at cycle-marked nodes: an item
// attached below a cycle still belongs to the subtree aggregate of every
// node on it. A visited set bounds the walk instead.
func walkAncestorsWithSelf(baseTree *tree.Base, logTree *tree.Log, node uint32, f func(uint32)) {
	visited := make(map[uint32]bool)
	cur, has := node, true
	for has && !visited[cur] {
		visited[cur] = true
		f(cur)
		cur, has = logTree.Parent(baseTree, cur)
	}
}

// Insert adds item to node's direct set and to the subtree set of every
// ancestor-with-self of node (as seen through baseTree/logTree). It
// reports whether node's own direct set changed.
func (l *Log) Insert(base *Base, baseTree *tree.Base, logTree *tree.Log, node, item uint32) bool {
	l.guard.Bind(base)
	if !l.direct.COW(&base.direct, node).Add(item) {
		return false
	}
	walkAncestorsWithSelf(baseTree, logTree, node, func(a uint32) {
		l.subtree.COW(&base.subtree, a).Add(item)
	})
	return true
}

// Remove deletes item from node's direct set and, if it was present, from
// the subtree set of every ancestor-with-self of node. It reports whether
// node's own direct set changed.
func (l *Log) Remove(base *Base, baseTree *tree.Base, logTree *tree.Log, node, item uint32) bool {
	l.guard.Bind(base)
	if !l.direct.COW(&base.direct, node).Remove(item) {
		return false
	}
	walkAncestorsWithSelf(baseTree, logTree, node, func(a uint32) {
		l.subtree.COW(&base.subtree, a).Remove(item)
	})
	return true
}
