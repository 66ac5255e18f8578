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

// Package oneindex implements a dense partial map from uint32 key to an
// arbitrary comparable value, following the Base/Log/Builder/TxView overlay
// protocol shared by every index in fastset.
package oneindex

import "github.com/erigontech/fastset/intset"

// slot is one entry in a Base's backing vector.
type slot[V comparable] struct {
	present bool
	value   V
}

// override is one recorded change in a Log: Some(v) replaces or sets a key,
// None clears it.
type override[V comparable] struct {
	some  bool
	value V
}

// Base holds the committed state of a OneIndex: a vector indexed by key,
// each slot optional, plus an explicit population count.
type Base[V comparable] struct {
	slots []slot[V]
	count int
}

// New returns an empty Base.
func New[V comparable]() *Base[V] {
	return &Base[V]{}
}

// WithCapacity returns an empty Base whose backing vector is pre-sized to
// hold keys up to cap-1 without reallocating.
func WithCapacity[V comparable](capacity int) *Base[V] {
	return &Base[V]{slots: make([]slot[V], 0, capacity)}
}

// Clone returns an independent copy of b.
func (b *Base[V]) Clone() *Base[V] {
	slots := make([]slot[V], len(b.slots))
	copy(slots, b.slots)
	return &Base[V]{slots: slots, count: b.count}
}

// Get returns the value stored at key, if any.
func (b *Base[V]) Get(key uint32) (V, bool) {
	if int(key) >= len(b.slots) {
		var zero V
		return zero, false
	}
	s := b.slots[key]
	if !s.present {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Len returns the number of occupied slots.
func (b *Base[V]) Len() int {
	return b.count
}

// IsEmpty reports whether no slot is occupied.
func (b *Base[V]) IsEmpty() bool {
	return b.count == 0
}

// Keys returns every occupied key in ascending order.
func (b *Base[V]) Keys() []uint32 {
	out := make([]uint32, 0, b.count)
	for i, s := range b.slots {
		if s.present {
			out = append(out, uint32(i))
		}
	}
	return out
}

// Range calls f for every occupied slot in ascending key order, stopping
// early if f returns false.
func (b *Base[V]) Range(f func(key uint32, value V) bool) {
	for i, s := range b.slots {
		if !s.present {
			continue
		}
		if !f(uint32(i), s.value) {
			return
		}
	}
}

func (b *Base[V]) set(key uint32, v V) (changed bool) {
	if int(key) >= len(b.slots) {
		if int(key) < cap(b.slots) {
			b.slots = b.slots[:key+1]
		} else {
			grown := make([]slot[V], key+1)
			copy(grown, b.slots)
			b.slots = grown
		}
	}
	s := &b.slots[key]
	if !s.present {
		b.count++
		changed = true
	} else if s.value != v {
		changed = true
	}
	s.present = true
	s.value = v
	return changed
}

func (b *Base[V]) clear(key uint32) (changed bool) {
	if int(key) >= len(b.slots) {
		return false
	}
	s := &b.slots[key]
	if !s.present {
		return false
	}
	var zero V
	s.present = false
	s.value = zero
	b.count--
	return true
}

// Log is a write-once delta over a specific Base: a set of per-key
// overrides. Reads fall through to the paired Base when no override is
// recorded.
type Log[V comparable] struct {
	guard     intset.Guard
	overrides map[uint32]override[V]
}

// NewLog returns an empty Log.
func NewLog[V comparable]() *Log[V] {
	return &Log[V]{overrides: make(map[uint32]override[V])}
}

// LogWithCapacity returns an empty Log whose override map is pre-sized.
func LogWithCapacity[V comparable](capacity int) *Log[V] {
	return &Log[V]{overrides: make(map[uint32]override[V], capacity)}
}

// Get reads key through the log against base.
func (l *Log[V]) Get(base *Base[V], key uint32) (V, bool) {
	l.guard.Bind(base)
	if ov, ok := l.overrides[key]; ok {
		if ov.some {
			return ov.value, true
		}
		var zero V
		return zero, false
	}
	return base.Get(key)
}

// Set records that key should hold v. If v already equals base's value at
// key, no override is recorded and any existing override is dropped, so
// reads fall through to base and the log stays a minimal delta.
func (l *Log[V]) Set(base *Base[V], key uint32, v V) {
	l.guard.Bind(base)
	if cur, ok := base.Get(key); ok && cur == v {
		delete(l.overrides, key)
		return
	}
	l.overrides[key] = override[V]{some: true, value: v}
}

// RangeOverrides calls f for every key this log has recorded an override
// for, Some(true) meaning key is set to value and Some(false) meaning key
// is cleared. It is intended for callers that need to enumerate the
// combined key set of base and log without materializing it themselves.
func (l *Log[V]) RangeOverrides(f func(key uint32, some bool, value V)) {
	for k, ov := range l.overrides {
		f(k, ov.some, ov.value)
	}
}

// Clear records that key should be vacant. If base has no value at key,
// any existing override is dropped instead, so reads fall through to base.
func (l *Log[V]) Clear(base *Base[V], key uint32) {
	l.guard.Bind(base)
	if _, ok := base.Get(key); !ok {
		delete(l.overrides, key)
		return
	}
	l.overrides[key] = override[V]{}
}

// Apply folds l into b, reporting whether any slot actually changed. l is
// consumed: its overrides are cleared.
func (b *Base[V]) Apply(l *Log[V]) bool {
	if len(l.overrides) > 0 {
		l.guard.Bind(b)
	}
	changed := false
	for key, ov := range l.overrides {
		if ov.some {
			if b.set(key, ov.value) {
				changed = true
			}
		} else {
			if b.clear(key) {
				changed = true
			}
		}
	}
	l.overrides = make(map[uint32]override[V])
	l.guard.Reset()
	return changed
}

// TxView is a read-only pairing of a Base and a Log, answering queries as
// if the log had already been applied.
type TxView[V comparable] struct {
	base *Base[V]
	log  *Log[V]
}

// NewTxView pairs base and log for read-through queries.
func NewTxView[V comparable](base *Base[V], log *Log[V]) TxView[V] {
	return TxView[V]{base: base, log: log}
}

// Get reads key as the overlay of log on base.
func (v TxView[V]) Get(key uint32) (V, bool) {
	return v.log.Get(v.base, key)
}

// Builder bundles one Base and one Log, forwarding mutations to the log
// and producing a committed Base on Build.
type Builder[V comparable] struct {
	base *Base[V]
	log  *Log[V]
}

// NewBuilder creates a Builder that owns base exclusively: base is mutated
// in place by Build.
func NewBuilder[V comparable](base *Base[V]) *Builder[V] {
	return &Builder[V]{base: base, log: NewLog[V]()}
}

// Get reads key through the builder's pending log.
func (bu *Builder[V]) Get(key uint32) (V, bool) {
	return bu.log.Get(bu.base, key)
}

// Set stages key to hold v.
func (bu *Builder[V]) Set(key uint32, v V) {
	bu.log.Set(bu.base, key, v)
}

// Clear stages key to be cleared.
func (bu *Builder[V]) Clear(key uint32) {
	bu.log.Clear(bu.base, key)
}

// Build applies the pending log into the builder's base and returns it
// along with whether anything changed.
func (bu *Builder[V]) Build() (*Base[V], bool) {
	changed := bu.base.Apply(bu.log)
	return bu.base, changed
}
