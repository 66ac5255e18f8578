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

import "github.com/erigontech/fastset/intset"

// removedItem is the evacuated state of one node in a detached subtree:
// its children and descendants sets, and its parent edge.
type removedItem struct {
	children    intset.Owned
	descendants intset.Owned
	parent      uint32
	hadParent   bool
}

// takeChildren evacuates n's children bucket out of the live overlay,
// leaving an empty override behind, and returns the evacuated set.
func (l *Log) takeChildren(base *Base, n uint32) intset.Owned {
	o := l.childrenCOW(base, n)
	l.children.SetOverride(n, intset.NewOwned())
	return o
}

func (l *Log) takeDescendants(base *Base, n uint32) intset.Owned {
	o := l.descendantsCOW(base, n)
	l.descendants.SetOverride(n, intset.NewOwned())
	return o
}

func (l *Log) takeParent(base *Base, n uint32) (uint32, bool) {
	p, has := l.Parent(base, n)
	l.parent.Clear(base.parent, n)
	return p, has
}

// removeImpl detaches the subtree rooted at n. Every subtree node's
// children, descendants and parent entries are evacuated from the live
// overlay into the returned record, n is removed from its former parent's
// children, and n together with its whole descendant set is stripped from
// the descendants of each ancestor of the former parent. The ancestor walk
// shares visited with the caller so a following reattach can reuse it.
func (l *Log) removeImpl(base *Base, n uint32, visited map[uint32]bool) map[uint32]removedItem {
	desc := l.takeDescendants(base, n)
	chil := l.takeChildren(base, n)

	removed := make(map[uint32]removedItem, int(desc.Len())+1)
	for _, id := range desc.ToSlice() {
		item := removedItem{
			children:    l.takeChildren(base, id),
			descendants: l.takeDescendants(base, id),
		}
		item.parent, item.hadParent = l.takeParent(base, id)
		removed[id] = item
	}

	if p, has := l.Parent(base, n); has {
		l.childrenCOW(base, p).Remove(n)
	}

	cur, has := l.Parent(base, n)
	for has {
		if visited[cur] {
			break
		}
		visited[cur] = true

		d := l.descendantsCOW(base, cur)
		d.Remove(n)
		d.Difference(desc.Bitmap())

		cur, has = l.Parent(base, cur)
	}

	item := removedItem{children: chil, descendants: desc}
	item.parent, item.hadParent = l.takeParent(base, n)
	removed[n] = item

	return removed
}

// reparentSubtree reattaches a subtree previously evacuated by removeImpl
// under newParent (or as a root when hasParent is false). Ancestors of the
// new parent gain root and root's old descendant set; then every evacuated
// node's own entries are restored verbatim from the record, so the
// subtree's internal shape survives the move untouched.
func (l *Log) reparentSubtree(base *Base, newParent uint32, hasParent bool, root uint32, removed map[uint32]removedItem, visited map[uint32]bool) {
	if hasParent {
		l.parent.Set(base.parent, root, newParent)
		l.childrenCOW(base, newParent).Add(root)
	} else {
		l.parent.Clear(base.parent, root)
	}

	item := removed[root]
	delete(removed, root)

	clear(visited)
	cur, has := newParent, hasParent
	for has {
		if visited[cur] {
			break
		}
		visited[cur] = true

		d := l.descendantsCOW(base, cur)
		d.Union(item.descendants.Bitmap())
		d.Add(root)

		cur, has = l.Parent(base, cur)
	}

	l.children.SetOverride(root, item.children)
	l.descendants.SetOverride(root, item.descendants)

	for node, it := range removed {
		if it.hadParent {
			l.parent.Set(base.parent, node, it.parent)
		} else {
			l.parent.Clear(base.parent, node)
		}
		l.children.SetOverride(node, it.children)
		l.descendants.SetOverride(node, it.descendants)
	}
}

// Insert makes child a child of parent, reparenting it if it already has a
// different one: the reparenting primitive. It is a no-op if child is
// already a direct child of parent.
func (l *Log) Insert(base *Base, parent, child uint32) {
	if cur, has := l.Parent(base, child); has && cur == parent {
		return
	}
	visited := make(map[uint32]bool)
	removed := l.removeImpl(base, child, visited)
	l.reparentSubtree(base, parent, true, child, removed, visited)
	l.detectCycleFrom(base, child)
}

// InsertRoot makes child parentless, reparenting it out of whatever subtree
// it currently sits in. Its own subtree travels with it. It is a no-op if
// child already has no parent.
func (l *Log) InsertRoot(base *Base, child uint32) {
	if _, has := l.Parent(base, child); !has {
		return
	}
	visited := make(map[uint32]bool)
	removed := l.removeImpl(base, child, visited)
	l.reparentSubtree(base, 0, false, child, removed, visited)
	l.detectCycleFrom(base, child)
}

// Remove takes n and its whole subtree out of the tree: every subtree node
// loses its parent, children and descendants entries, leaving each as an
// isolated parentless node. The cycle set is then cleared and re-derived
// from every node that still has a parent.
func (l *Log) Remove(base *Base, n uint32) {
	l.removeImpl(base, n, make(map[uint32]bool))

	cleared := intset.NewOwned()
	l.cycles = &cleared
	for _, node := range l.allNodesWithParent(base) {
		l.detectCycleFrom(base, node)
	}
}

// allNodesWithParent returns every node that currently has a parent, as
// overlaid by this log against base.
func (l *Log) allNodesWithParent(base *Base) []uint32 {
	set := make(map[uint32]bool)
	base.parent.Range(func(key uint32, _ uint32) bool {
		set[key] = true
		return true
	})
	l.parent.RangeOverrides(func(key uint32, some bool, _ uint32) {
		if some {
			set[key] = true
		} else {
			delete(set, key)
		}
	})
	out := make([]uint32, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// detectCycleFrom walks n's parent chain, and on finding a node already
// visited earlier in the same walk, marks every node from that node's
// first occurrence through the end of the walk as cycle nodes. It stops
// early on reaching a node already known to be a cycle node.
func (l *Log) detectCycleFrom(base *Base, n uint32) {
	var path []uint32
	index := make(map[uint32]int)
	cur := n
	for {
		if l.isCycleNode(base, cur) {
			return
		}
		if idx, seen := index[cur]; seen {
			cycles := l.cyclesCOW(base)
			for _, node := range path[idx:] {
				cycles.Add(node)
			}
			return
		}
		index[cur] = len(path)
		path = append(path, cur)

		p, has := l.Parent(base, cur)
		if !has {
			return
		}
		cur = p
	}
}
