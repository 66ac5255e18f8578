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

package intset

import "github.com/RoaringBitmap/roaring/v2"

// Store is a uint32 -> interned set map: the common shape behind
// FlatSetIndex's per-key buckets, Tree's children/descendants, and
// NodeSetIndex's direct/subtree maps. No key ever maps to an empty set
// (empty means absent).
type Store struct {
	buckets map[uint32]Handle
}

// NewStore returns an empty Store.
func NewStore() Store {
	return Store{buckets: make(map[uint32]Handle)}
}

// NewStoreWithCapacity returns an empty Store pre-sized for capacity keys.
func NewStoreWithCapacity(capacity int) Store {
	return Store{buckets: make(map[uint32]Handle, capacity)}
}

// Get returns key's set, or a borrowed empty reference if absent.
func (s *Store) Get(key uint32) Handle {
	if h, ok := s.buckets[key]; ok {
		return h
	}
	return EmptyRef()
}

// Clone returns an independent copy of s, bumping every held handle's
// refcount.
func (s *Store) Clone() Store {
	out := make(map[uint32]Handle, len(s.buckets))
	for k, h := range s.buckets {
		out[k] = h.Clone()
	}
	return Store{buckets: out}
}

// Release drops ownership of every handle held by s.
func (s *Store) Release() {
	for _, h := range s.buckets {
		h.Release()
	}
	s.buckets = nil
}

// Keys returns every key with a non-empty set, in unspecified order.
func (s *Store) Keys() []uint32 {
	out := make([]uint32, 0, len(s.buckets))
	for k := range s.buckets {
		out = append(out, k)
	}
	return out
}

// Len returns the number of keys with a non-empty set.
func (s *Store) Len() int {
	return len(s.buckets)
}

// Range calls f for every (key, set) entry in unspecified order, stopping
// early if f returns false. The Handle passed to f is borrowed.
func (s *Store) Range(f func(key uint32, h Handle) bool) {
	for k, h := range s.buckets {
		if !f(k, h) {
			return
		}
	}
}

// StoreLog is a write-once delta over a specific Store.
type StoreLog struct {
	buckets map[uint32]Owned
}

// NewStoreLog returns an empty StoreLog.
func NewStoreLog() StoreLog {
	return StoreLog{buckets: make(map[uint32]Owned)}
}

// NewStoreLogWithCapacity returns an empty StoreLog pre-sized for capacity
// touched keys.
func NewStoreLogWithCapacity(capacity int) StoreLog {
	return StoreLog{buckets: make(map[uint32]Owned, capacity)}
}

// ReadBitmap returns the effective contents of key, read through to store
// if untouched by this log.
func (l *StoreLog) ReadBitmap(store *Store, key uint32) *roaring.Bitmap {
	if o, ok := l.buckets[key]; ok {
		return o.Bitmap()
	}
	return store.Get(key).Bitmap()
}

// COW returns the log's owned working copy of key, copying it from store
// on first touch.
func (l *StoreLog) COW(store *Store, key uint32) Owned {
	if o, ok := l.buckets[key]; ok {
		return o
	}
	o := FromHandle(store.Get(key))
	l.buckets[key] = o
	return o
}

// Touched reports whether key already has a recorded override in this log.
func (l *StoreLog) Touched(key uint32) (Owned, bool) {
	o, ok := l.buckets[key]
	return o, ok
}

// SetOverride forces key's override to o, discarding whatever was there
// before (copy-on-write or otherwise). Used when a whole entry is being
// replaced wholesale, such as restoring a detached subtree record.
func (l *StoreLog) SetOverride(key uint32, o Owned) {
	l.buckets[key] = o
}

// ApplyInto folds l into store, reporting whether any entry changed. l is
// reset to empty.
func (l *StoreLog) ApplyInto(store *Store) bool {
	changed := false
	for key, o := range l.buckets {
		cur, hasCur := store.buckets[key]
		switch {
		case o.IsEmpty() && hasCur:
			cur.Release()
			delete(store.buckets, key)
			changed = true
		case o.IsEmpty():
			// stays absent
		case hasCur && o.EqualHandle(cur):
			// unchanged
		default:
			if hasCur {
				cur.Release()
			}
			store.buckets[key] = o.Intern()
			changed = true
		}
	}
	l.buckets = make(map[uint32]Owned)
	return changed
}

// Reset discards all pending overrides without applying them.
func (l *StoreLog) Reset() {
	l.buckets = make(map[uint32]Owned)
}
