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

// Package tree implements a forest of uint32 nodes with parent, children
// and descendants relations maintained incrementally under reparenting,
// following the shared Base/Log/Builder/TxView overlay protocol. Cycles
// are tolerated rather than rejected: nodes reachable only through a
// parent cycle are tracked in a cycles set; Depth reports a CycleError for
// them and ancestor walks stop at them instead of looping forever.
package tree

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/erigontech/fastset/intset"
	"github.com/erigontech/fastset/oneindex"
)

// CycleError is returned by Depth when Node lies on, or can only reach the
// root through, a cycle.
type CycleError struct {
	Node uint32
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("fastset/tree: node %d is part of a parent cycle", e.Node)
}

// Base holds the committed state of a tree: each node's parent, its direct
// children, its full descendant set, and the set of nodes currently
// entangled in a cycle.
type Base struct {
	parent      *oneindex.Base[uint32]
	children    intset.Store
	descendants intset.Store
	cycles      intset.Handle
}

// New returns an empty Base: no nodes, no edges.
func New() *Base {
	return &Base{
		parent:      oneindex.New[uint32](),
		children:    intset.NewStore(),
		descendants: intset.NewStore(),
		cycles:      intset.Empty(),
	}
}

// WithCapacity returns an empty Base pre-sized for capacity nodes.
func WithCapacity(capacity int) *Base {
	return &Base{
		parent:      oneindex.WithCapacity[uint32](capacity),
		children:    intset.NewStoreWithCapacity(capacity),
		descendants: intset.NewStoreWithCapacity(capacity),
		cycles:      intset.Empty(),
	}
}

// Clone returns an independent copy of b.
func (b *Base) Clone() *Base {
	return &Base{
		parent:      b.parent.Clone(),
		children:    b.children.Clone(),
		descendants: b.descendants.Clone(),
		cycles:      b.cycles.Clone(),
	}
}

// Release drops b's ownership of every handle it holds.
func (b *Base) Release() {
	b.children.Release()
	b.descendants.Release()
	b.cycles.Release()
}

// Parent returns n's parent, if any.
func (b *Base) Parent(n uint32) (uint32, bool) {
	return b.parent.Get(n)
}

// Children returns n's direct children. The returned Handle is borrowed.
func (b *Base) Children(n uint32) intset.Handle {
	return b.children.Get(n)
}

// Descendants returns every node reachable from n by following children.
// The returned Handle is borrowed.
func (b *Base) Descendants(n uint32) intset.Handle {
	return b.descendants.Get(n)
}

// IsCycleNode reports whether n is currently marked as part of a cycle.
func (b *Base) IsCycleNode(n uint32) bool {
	return b.cycles.Contains(n)
}

// Cycles returns the set of all nodes currently entangled in a cycle. The
// returned Handle is borrowed.
func (b *Base) Cycles() intset.Handle {
	return b.cycles
}

// AllNodes returns every node the tree knows about: every node with a
// parent or a child, on either end of the edge. The result is a fresh
// bitmap.
func (b *Base) AllNodes() *roaring.Bitmap {
	out := roaring.New()
	b.children.Range(func(p uint32, h intset.Handle) bool {
		out.Add(p)
		out.Or(h.Bitmap())
		return true
	})
	b.parent.Range(func(child uint32, parent uint32) bool {
		out.Add(child)
		out.Add(parent)
		return true
	})
	return out
}
