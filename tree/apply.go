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

// Apply folds l into b, reporting whether anything changed. l is consumed.
func (b *Base) Apply(l *Log) bool {
	l.guard.Bind(b)
	changed := false
	if b.parent.Apply(l.parent) {
		changed = true
	}
	if l.children.ApplyInto(&b.children) {
		changed = true
	}
	if l.descendants.ApplyInto(&b.descendants) {
		changed = true
	}
	if l.cycles != nil && !l.cycles.EqualHandle(b.cycles) {
		b.cycles.Release()
		b.cycles = l.cycles.Intern()
		changed = true
	}
	l.cycles = nil
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

func (v TxView) Parent(n uint32) (uint32, bool)         { return v.log.Parent(v.base, n) }
func (v TxView) Children(n uint32) []uint32             { return v.log.Children(v.base, n) }
func (v TxView) ChildrenWithSelf(n uint32) []uint32     { return v.log.ChildrenWithSelf(v.base, n) }
func (v TxView) Descendants(n uint32) []uint32          { return v.log.Descendants(v.base, n) }
func (v TxView) DescendantsWithSelf(n uint32) []uint32  { return v.log.DescendantsWithSelf(v.base, n) }
func (v TxView) Ancestors(n uint32) []uint32            { return v.log.Ancestors(v.base, n) }
func (v TxView) AncestorsWithSelf(n uint32) []uint32    { return v.log.AncestorsWithSelf(v.base, n) }
func (v TxView) Depth(n uint32) (int, error)            { return v.log.Depth(v.base, n) }
func (v TxView) IsDescendantOf(c, p uint32) bool        { return v.log.IsDescendantOf(v.base, c, p) }
func (v TxView) IsCycleNode(n uint32) bool              { return v.log.IsCycleNode(v.base, n) }

// Builder bundles one Base and one Log, forwarding mutations to the log and
// producing a committed Base on Build.
type Builder struct {
	base *Base
	log  *Log
}

// NewBuilder creates a Builder that owns base exclusively.
func NewBuilder(base *Base) *Builder {
	return &Builder{base: base, log: NewLog()}
}

func (bu *Builder) Parent(n uint32) (uint32, bool)     { return bu.log.Parent(bu.base, n) }
func (bu *Builder) Children(n uint32) []uint32         { return bu.log.Children(bu.base, n) }
func (bu *Builder) ChildrenWithSelf(n uint32) []uint32 { return bu.log.ChildrenWithSelf(bu.base, n) }
func (bu *Builder) Descendants(n uint32) []uint32      { return bu.log.Descendants(bu.base, n) }
func (bu *Builder) DescendantsWithSelf(n uint32) []uint32 {
	return bu.log.DescendantsWithSelf(bu.base, n)
}
func (bu *Builder) Ancestors(n uint32) []uint32         { return bu.log.Ancestors(bu.base, n) }
func (bu *Builder) AncestorsWithSelf(n uint32) []uint32 { return bu.log.AncestorsWithSelf(bu.base, n) }
func (bu *Builder) Depth(n uint32) (int, error)         { return bu.log.Depth(bu.base, n) }
func (bu *Builder) IsDescendantOf(c, p uint32) bool     { return bu.log.IsDescendantOf(bu.base, c, p) }
func (bu *Builder) IsCycleNode(n uint32) bool           { return bu.log.IsCycleNode(bu.base, n) }

// Insert makes child a child of parent, reparenting it if needed.
func (bu *Builder) Insert(parent, child uint32) { bu.log.Insert(bu.base, parent, child) }

// InsertRoot makes child parentless.
func (bu *Builder) InsertRoot(child uint32) { bu.log.InsertRoot(bu.base, child) }

// Remove severs n from the tree and re-derives the cycle set from scratch.
func (bu *Builder) Remove(n uint32) { bu.log.Remove(bu.base, n) }

// Build applies the pending log into the builder's base and returns it
// along with whether anything changed.
func (bu *Builder) Build() (*Base, bool) {
	changed := bu.base.Apply(bu.log)
	return bu.base, changed
}
