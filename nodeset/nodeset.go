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

// Package nodeset implements a set-valued index keyed by the nodes of a
// tree, where inserting an item against a node also makes it visible in
// the subtree aggregate of every ancestor. It does not own a tree: every
// operation is handed the tree's Base and Log explicitly and reads through
// both, so a NodeSetIndex always reflects the tree's state as of the
// moment each operation ran.
package nodeset

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/erigontech/fastset/intset"
)

// Base holds the committed state: direct[n] is the set of items inserted
// directly against n, and subtree[n] is the union of direct[d] over every
// d in n's descendants-with-self.
type Base struct {
	direct  intset.Store
	subtree intset.Store
}

// New returns an empty Base.
func New() *Base {
	return &Base{direct: intset.NewStore(), subtree: intset.NewStore()}
}

// WithCapacity returns an empty Base pre-sized for capacity nodes.
func WithCapacity(capacity int) *Base {
	return &Base{
		direct:  intset.NewStoreWithCapacity(capacity),
		subtree: intset.NewStoreWithCapacity(capacity),
	}
}

// Clone returns an independent copy of b.
func (b *Base) Clone() *Base {
	return &Base{direct: b.direct.Clone(), subtree: b.subtree.Clone()}
}

// Release drops b's ownership of every handle it holds.
func (b *Base) Release() {
	b.direct.Release()
	b.subtree.Release()
}

// Direct returns the items inserted directly against n. The returned
// Handle is borrowed.
func (b *Base) Direct(n uint32) intset.Handle {
	return b.direct.Get(n)
}

// Subtree returns the union of direct items over n's descendants-with-self.
// The returned Handle is borrowed.
func (b *Base) Subtree(n uint32) intset.Handle {
	return b.subtree.Get(n)
}

// Values returns the union of every node's direct items as a fresh bitmap.
func (b *Base) Values() *roaring.Bitmap {
	out := roaring.New()
	b.direct.Range(func(_ uint32, h intset.Handle) bool {
		out.Or(h.Bitmap())
		return true
	})
	return out
}
