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

import "github.com/erigontech/fastset/tree"

// Apply folds l into b, reporting whether anything changed. l is consumed.
func (b *Base) Apply(l *Log) bool {
	l.guard.Bind(b)
	changed := l.direct.ApplyInto(&b.direct)
	if l.subtree.ApplyInto(&b.subtree) {
		changed = true
	}
	l.guard.Reset()
	return changed
}

// TxView is a read-only pairing of a Base and a Log.
type TxView struct {
	base *Base
	log  *Log
}

// NewTxView pairs base and log for read-through queries.
func NewTxView(base *Base, log *Log) TxView {
	return TxView{base: base, log: log}
}

func (v TxView) Direct(n uint32) []uint32  { return v.log.Direct(v.base, n) }
func (v TxView) Subtree(n uint32) []uint32 { return v.log.Subtree(v.base, n) }

// Builder bundles one Base and one Log, forwarding mutations to the log and
// producing a committed Base on Build. Every mutation needs the owning
// tree's current state, since insertions and removals propagate up the
// ancestor chain.
type Builder struct {
	base *Base
	log  *Log
}

// NewBuilder creates a Builder that owns base exclusively.
func NewBuilder(base *Base) *Builder {
	return &Builder{base: base, log: NewLog()}
}

func (bu *Builder) Direct(n uint32) []uint32  { return bu.log.Direct(bu.base, n) }
func (bu *Builder) Subtree(n uint32) []uint32 { return bu.log.Subtree(bu.base, n) }

func (bu *Builder) Insert(baseTree *tree.Base, logTree *tree.Log, node, item uint32) bool {
	return bu.log.Insert(bu.base, baseTree, logTree, node, item)
}

func (bu *Builder) Remove(baseTree *tree.Base, logTree *tree.Log, node, item uint32) bool {
	return bu.log.Remove(bu.base, baseTree, logTree, node, item)
}

func (bu *Builder) RemoveSubtree(baseTree *tree.Base, logTree *tree.Log, root uint32) DetachedSubtree {
	return bu.log.RemoveSubtree(bu.base, baseTree, logTree, root)
}

func (bu *Builder) InsertSubtree(baseTree *tree.Base, logTree *tree.Log, rec DetachedSubtree) {
	bu.log.InsertSubtree(bu.base, baseTree, logTree, rec)
}

// Build applies the pending log into the builder's base and returns it
// along with whether anything changed.
func (bu *Builder) Build() (*Base, bool) {
	changed := bu.base.Apply(bu.log)
	return bu.base, changed
}
