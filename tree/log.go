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

package tree

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/erigontech/fastset/intset"
	"github.com/erigontech/fastset/oneindex"
)

// Log is a write-once delta over a specific Base.
type Log struct {
	guard       intset.Guard
	parent      *oneindex.Log[uint32]
	children    intset.StoreLog
	descendants intset.StoreLog
	cycles      *intset.Owned
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{
		parent:      oneindex.NewLog[uint32](),
		children:    intset.NewStoreLog(),
		descendants: intset.NewStoreLog(),
	}
}

// NewLogWithCapacity returns an empty Log pre-sized for capacity touched
// nodes.
func NewLogWithCapacity(capacity int) *Log {
	return &Log{
		parent:      oneindex.LogWithCapacity[uint32](capacity),
		children:    intset.NewStoreLogWithCapacity(capacity),
		descendants: intset.NewStoreLogWithCapacity(capacity),
	}
}

func (l *Log) childrenBitmap(base *Base, n uint32) *roaring.Bitmap {
	l.guard.Bind(base)
	return l.children.ReadBitmap(&base.children, n)
}

func (l *Log) descendantsBitmap(base *Base, n uint32) *roaring.Bitmap {
	l.guard.Bind(base)
	return l.descendants.ReadBitmap(&base.descendants, n)
}

func (l *Log) childrenCOW(base *Base, n uint32) intset.Owned {
	l.guard.Bind(base)
	return l.children.COW(&base.children, n)
}

func (l *Log) descendantsCOW(base *Base, n uint32) intset.Owned {
	l.guard.Bind(base)
	return l.descendants.COW(&base.descendants, n)
}

func (l *Log) cyclesBitmap(base *Base) *roaring.Bitmap {
	l.guard.Bind(base)
	if l.cycles != nil {
		return l.cycles.Bitmap()
	}
	return base.Cycles().Bitmap()
}

func (l *Log) cyclesCOW(base *Base) intset.Owned {
	l.guard.Bind(base)
	if l.cycles == nil {
		o := intset.FromHandle(base.Cycles())
		l.cycles = &o
	}
	return *l.cycles
}

// isCycleNode reports whether n is currently marked as part of a cycle, as
// overlaid by this log.
func (l *Log) isCycleNode(base *Base, n uint32) bool {
	return l.cyclesBitmap(base).Contains(n)
}

// Parent reads n's parent through the log against base.
func (l *Log) Parent(base *Base, n uint32) (uint32, bool) {
	return l.parent.Get(base.parent, n)
}

// Children returns n's effective direct children as a fresh slice.
func (l *Log) Children(base *Base, n uint32) []uint32 {
	return l.childrenBitmap(base, n).ToArray()
}

// ChildrenWithSelf returns n together with its direct children.
func (l *Log) ChildrenWithSelf(base *Base, n uint32) []uint32 {
	return append([]uint32{n}, l.Children(base, n)...)
}

// Descendants returns every node reachable from n by following children,
// as a fresh slice.
func (l *Log) Descendants(base *Base, n uint32) []uint32 {
	return l.descendantsBitmap(base, n).ToArray()
}

// DescendantsWithSelf returns n together with its descendants.
func (l *Log) DescendantsWithSelf(base *Base, n uint32) []uint32 {
	return append([]uint32{n}, l.Descendants(base, n)...)
}

// IsDescendantOf reports whether c is a descendant of p.
func (l *Log) IsDescendantOf(base *Base, c, p uint32) bool {
	return l.descendantsBitmap(base, p).Contains(c)
}

// IsCycleNode reports whether n is currently marked as part of a cycle.
func (l *Log) IsCycleNode(base *Base, n uint32) bool {
	return l.isCycleNode(base, n)
}

// Ancestors returns parent(n), parent(parent(n)), ... in that order,
// halting at a node with no parent, a node already marked as a cycle, or a
// node already produced earlier in this walk.
func (l *Log) Ancestors(base *Base, n uint32) []uint32 {
	var out []uint32
	visited := map[uint32]bool{n: true}
	cur, has := l.Parent(base, n)
	for has {
		if visited[cur] || l.isCycleNode(base, cur) {
			break
		}
		visited[cur] = true
		out = append(out, cur)
		cur, has = l.Parent(base, cur)
	}
	return out
}

// AncestorsWithSelf returns n together with its ancestors.
func (l *Log) AncestorsWithSelf(base *Base, n uint32) []uint32 {
	return append([]uint32{n}, l.Ancestors(base, n)...)
}

// Depth returns the length of n's ancestor chain including n itself. It
// returns a *CycleError if n lies on, or can only reach the root through,
// a cycle.
func (l *Log) Depth(base *Base, n uint32) (int, error) {
	visited := map[uint32]bool{}
	depth := 0
	cur := n
	for {
		if l.isCycleNode(base, cur) {
			return 0, &CycleError{Node: cur}
		}
		if visited[cur] {
			return depth, nil
		}
		visited[cur] = true
		depth++
		p, has := l.Parent(base, cur)
		if !has {
			return depth, nil
		}
		cur = p
	}
}
