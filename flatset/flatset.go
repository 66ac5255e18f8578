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

// Package flatset implements a map from uint32 key to a set of uint32,
// plus a distinguished "none" bucket, following the shared Base/Log/
// Builder/TxView overlay protocol. Base buckets are interned (shared,
// immutable); Log buckets are owned (private, mutable) copy-on-write
// working copies.
package flatset

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/erigontech/fastset/intset"
)

// Base holds the committed state: a key -> interned set map plus a none
// bucket. No base entry ever maps to an empty set; an empty set is
// represented by the key's absence.
type Base struct {
	buckets intset.Store
	none    intset.Handle
}

// New returns an empty Base. Its none bucket is the process-wide empty
// singleton.
func New() *Base {
	return &Base{buckets: intset.NewStore(), none: intset.Empty()}
}

// WithCapacity returns an empty Base whose bucket map is pre-sized.
func WithCapacity(capacity int) *Base {
	return &Base{buckets: intset.NewStoreWithCapacity(capacity), none: intset.Empty()}
}

// Clone returns an independent copy of b, bumping the refcount of every
// handle it holds (Handles are immutable, so the copy can share payloads).
func (b *Base) Clone() *Base {
	return &Base{buckets: b.buckets.Clone(), none: b.none.Clone()}
}

// Release drops b's ownership of every handle it holds. Call it once a
// Base is no longer needed, mirroring the Rust original's Drop.
func (b *Base) Release() {
	b.buckets.Release()
	b.none.Release()
}

// Get returns the set stored at key, or the shared empty singleton if key
// is absent. The returned Handle is borrowed: do not call Release on it.
func (b *Base) Get(key uint32) intset.Handle {
	return b.buckets.Get(key)
}

// Contains reports whether v is a member of key's set.
func (b *Base) Contains(key, v uint32) bool {
	return b.Get(key).Contains(v)
}

// GetNone returns the none bucket. The returned Handle is borrowed.
func (b *Base) GetNone() intset.Handle {
	return b.none
}

// ContainsNone reports whether v is a member of the none bucket.
func (b *Base) ContainsNone(v uint32) bool {
	return b.none.Contains(v)
}

// Keys returns every key with a non-empty bucket, in unspecified order.
func (b *Base) Keys() []uint32 {
	return b.buckets.Keys()
}

// Len returns the number of keys with a non-empty bucket. The none bucket
// is not counted.
func (b *Base) Len() int {
	return b.buckets.Len()
}

// Values returns the union of every bucket, the none bucket included, as a
// fresh bitmap.
func (b *Base) Values() *roaring.Bitmap {
	out := b.none.Bitmap().Clone()
	b.buckets.Range(func(_ uint32, h intset.Handle) bool {
		out.Or(h.Bitmap())
		return true
	})
	return out
}

// Log is a write-once delta over a specific Base.
type Log struct {
	guard   intset.Guard
	buckets intset.StoreLog
	none    *intset.Owned
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{buckets: intset.NewStoreLog()}
}

// LogWithCapacity returns an empty Log whose bucket map is pre-sized.
func LogWithCapacity(capacity int) *Log {
	return &Log{buckets: intset.NewStoreLogWithCapacity(capacity)}
}

func (l *Log) readBitmap(base *Base, key uint32) *roaring.Bitmap {
	l.guard.Bind(base)
	return l.buckets.ReadBitmap(&base.buckets, key)
}

func (l *Log) readNoneBitmap(base *Base) *roaring.Bitmap {
	l.guard.Bind(base)
	if l.none != nil {
		return l.none.Bitmap()
	}
	return base.GetNone().Bitmap()
}

// Contains reads key through the log against base.
func (l *Log) Contains(base *Base, key, v uint32) bool {
	return l.readBitmap(base, key).Contains(v)
}

// Get returns the effective elements of key's set as a fresh slice.
func (l *Log) Get(base *Base, key uint32) []uint32 {
	return l.readBitmap(base, key).ToArray()
}

// Len returns the effective cardinality of key's set.
func (l *Log) Len(base *Base, key uint32) uint64 {
	return l.readBitmap(base, key).GetCardinality()
}

// ContainsNone reads the none bucket through the log against base.
func (l *Log) ContainsNone(base *Base, v uint32) bool {
	return l.readNoneBitmap(base).Contains(v)
}

// GetNone returns the effective elements of the none bucket.
func (l *Log) GetNone(base *Base) []uint32 {
	return l.readNoneBitmap(base).ToArray()
}

// cow returns the log's owned working copy of key's bucket, copying it
// from base on first touch.
func (l *Log) cow(base *Base, key uint32) intset.Owned {
	l.guard.Bind(base)
	return l.buckets.COW(&base.buckets, key)
}

func (l *Log) cowNone(base *Base) intset.Owned {
	l.guard.Bind(base)
	if l.none == nil {
		o := intset.FromHandle(base.GetNone())
		l.none = &o
	}
	return *l.none
}

// Insert adds v to key's bucket, copy-on-writing it from base first.
// Reports whether the bucket actually changed.
func (l *Log) Insert(base *Base, key, v uint32) bool {
	return l.cow(base, key).Add(v)
}

// Remove deletes v from key's bucket. Reports whether the bucket changed.
func (l *Log) Remove(base *Base, key, v uint32) bool {
	return l.cow(base, key).Remove(v)
}

// InsertNone adds v to the none bucket. Reports whether it changed.
func (l *Log) InsertNone(base *Base, v uint32) bool {
	return l.cowNone(base).Add(v)
}

// RemoveNone deletes v from the none bucket. Reports whether it changed.
func (l *Log) RemoveNone(base *Base, v uint32) bool {
	return l.cowNone(base).Remove(v)
}

func changedByBitmapOp(o intset.Owned, apply func()) bool {
	before := o.Bitmap().Clone()
	apply()
	return !o.Bitmap().Equals(before)
}

// Union replaces key's bucket with bucket ∪ rhs. Reports whether it
// changed.
func (l *Log) Union(base *Base, key uint32, rhs *roaring.Bitmap) bool {
	o := l.cow(base, key)
	return changedByBitmapOp(o, func() { o.Union(rhs) })
}

// Intersection replaces key's bucket with bucket ∩ rhs.
func (l *Log) Intersection(base *Base, key uint32, rhs *roaring.Bitmap) bool {
	o := l.cow(base, key)
	return changedByBitmapOp(o, func() { o.Intersect(rhs) })
}

// Difference replaces key's bucket with bucket \ rhs.
func (l *Log) Difference(base *Base, key uint32, rhs *roaring.Bitmap) bool {
	o := l.cow(base, key)
	return changedByBitmapOp(o, func() { o.Difference(rhs) })
}

// UnionNone replaces the none bucket with none ∪ rhs.
func (l *Log) UnionNone(base *Base, rhs *roaring.Bitmap) bool {
	o := l.cowNone(base)
	return changedByBitmapOp(o, func() { o.Union(rhs) })
}

// IntersectionNone replaces the none bucket with none ∩ rhs.
func (l *Log) IntersectionNone(base *Base, rhs *roaring.Bitmap) bool {
	o := l.cowNone(base)
	return changedByBitmapOp(o, func() { o.Intersect(rhs) })
}

// DifferenceNone replaces the none bucket with none \ rhs.
func (l *Log) DifferenceNone(base *Base, rhs *roaring.Bitmap) bool {
	o := l.cowNone(base)
	return changedByBitmapOp(o, func() { o.Difference(rhs) })
}

// Apply folds l into b, reporting whether any base entry changed. l is
// consumed.
func (b *Base) Apply(l *Log) bool {
	l.guard.Bind(b)
	changed := l.buckets.ApplyInto(&b.buckets)
	if l.none != nil && !l.none.EqualHandle(b.none) {
		b.none.Release()
		b.none = l.none.Intern()
		changed = true
	}
	l.none = nil
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

// Contains reads key's bucket as overlaid by the log.
func (v TxView) Contains(key, item uint32) bool { return v.log.Contains(v.base, key, item) }

// Get returns key's effective bucket elements.
func (v TxView) Get(key uint32) []uint32 { return v.log.Get(v.base, key) }

// ContainsNone reads the none bucket as overlaid by the log.
func (v TxView) ContainsNone(item uint32) bool { return v.log.ContainsNone(v.base, item) }

// GetNone returns the effective none bucket elements.
func (v TxView) GetNone() []uint32 { return v.log.GetNone(v.base) }

// Builder bundles one Base and one Log, forwarding mutations to the log
// and producing a committed Base on Build.
type Builder struct {
	base *Base
	log  *Log
}

// NewBuilder creates a Builder that owns base exclusively.
func NewBuilder(base *Base) *Builder {
	return &Builder{base: base, log: NewLog()}
}

func (bu *Builder) Contains(key, item uint32) bool    { return bu.log.Contains(bu.base, key, item) }
func (bu *Builder) Get(key uint32) []uint32           { return bu.log.Get(bu.base, key) }
func (bu *Builder) ContainsNone(item uint32) bool     { return bu.log.ContainsNone(bu.base, item) }
func (bu *Builder) GetNone() []uint32                 { return bu.log.GetNone(bu.base) }
func (bu *Builder) Insert(key, item uint32) bool      { return bu.log.Insert(bu.base, key, item) }
func (bu *Builder) Remove(key, item uint32) bool      { return bu.log.Remove(bu.base, key, item) }
func (bu *Builder) InsertNone(item uint32) bool       { return bu.log.InsertNone(bu.base, item) }
func (bu *Builder) RemoveNone(item uint32) bool       { return bu.log.RemoveNone(bu.base, item) }

func (bu *Builder) Union(key uint32, rhs *roaring.Bitmap) bool {
	return bu.log.Union(bu.base, key, rhs)
}
func (bu *Builder) Intersection(key uint32, rhs *roaring.Bitmap) bool {
	return bu.log.Intersection(bu.base, key, rhs)
}
func (bu *Builder) Difference(key uint32, rhs *roaring.Bitmap) bool {
	return bu.log.Difference(bu.base, key, rhs)
}
func (bu *Builder) UnionNone(rhs *roaring.Bitmap) bool        { return bu.log.UnionNone(bu.base, rhs) }
func (bu *Builder) IntersectionNone(rhs *roaring.Bitmap) bool { return bu.log.IntersectionNone(bu.base, rhs) }
func (bu *Builder) DifferenceNone(rhs *roaring.Bitmap) bool   { return bu.log.DifferenceNone(bu.base, rhs) }

// Build applies the pending log into the builder's base and returns it
// along with whether anything changed.
func (bu *Builder) Build() (*Base, bool) {
	changed := bu.base.Apply(bu.log)
	return bu.base, changed
}
