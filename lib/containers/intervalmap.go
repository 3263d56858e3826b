// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"fmt"
	"iter"
	"strings"
)

// IntervalMap is a map from every K to a V, stored compactly as the
// points where the value changes.
//
// Every key below the first boundary maps to the default value.  A
// boundary (k, v) means that keys from k (inclusive) up to the next
// boundary (exclusive) map to v.  The boundaries are kept canonical:
// adjacent boundaries never have equal values, and the first
// boundary never has the default value.
//
// The default value is not stored as a boundary, so K need not have
// a minimum value.
//
// An IntervalMap is not safe for concurrent use; a Lookup must not
// overlap an Assign.
//
// The zero IntervalMap maps everything to the zero V, and is backed
// by a SortedMap.
type IntervalMap[K Ordered[K], V comparable] struct {
	def   V
	store BoundaryStore[K, V]
}

// NewIntervalMap returns an IntervalMap that maps every key to def,
// backed by a SortedMap.
func NewIntervalMap[K Ordered[K], V comparable](def V) *IntervalMap[K, V] {
	return &IntervalMap[K, V]{
		def:   def,
		store: new(SortedMap[K, V]),
	}
}

// NewIntervalMapWithStore is like NewIntervalMap, but uses the given
// store for the boundaries.  The store must be empty, and must not
// be modified other than through the returned IntervalMap.
func NewIntervalMapWithStore[K Ordered[K], V comparable](def V, store BoundaryStore[K, V]) *IntervalMap[K, V] {
	if n := store.Len(); n != 0 {
		panic(fmt.Errorf("containers.NewIntervalMapWithStore: store is not empty: has %d entries", n))
	}
	return &IntervalMap[K, V]{
		def:   def,
		store: store,
	}
}

func (m *IntervalMap[K, V]) init() {
	if m.store == nil {
		m.store = new(SortedMap[K, V])
	}
}

// Default returns the value of every key below the first boundary.
func (m *IntervalMap[K, V]) Default() V {
	return m.def
}

// Len returns the number of stored boundaries.
func (m *IntervalMap[K, V]) Len() int {
	if m.store == nil {
		return 0
	}
	return m.store.Len()
}

// Lookup returns the value that key maps to.
func (m *IntervalMap[K, V]) Lookup(key K) V {
	if m.store != nil {
		if _, val, ok := m.store.Floor(key); ok {
			return val
		}
	}
	return m.def
}

// Assign maps every key in [beg, end) to val, leaving every other key
// unchanged.  If !(beg < end) it does nothing.
func (m *IntervalMap[K, V]) Assign(beg, end K, val V) {
	if beg.Compare(end) >= 0 {
		return
	}
	m.init()

	// Read everything we need before touching the store.
	valAtEnd := m.Lookup(end)
	valBeforeBeg := m.def
	if _, v, ok := m.store.Lower(beg); ok {
		valBeforeBeg = v
	}

	m.store.DeleteRange(beg, end)
	if valAtEnd == val {
		// The new run continues past end, so a boundary there
		// would repeat val.
		m.store.Delete(end)
	} else {
		m.store.Store(end, valAtEnd)
	}
	if valBeforeBeg != val {
		m.store.Store(beg, val)
	}
}

// Range calls fn for each boundary in ascending key order, until fn
// returns false.  It does not include the default value.
func (m *IntervalMap[K, V]) Range(fn func(K, V) bool) {
	if m.store == nil {
		return
	}
	m.store.Range(fn)
}

// Enumerate returns the boundaries in ascending key order.  It does
// not include the default value.
func (m *IntervalMap[K, V]) Enumerate() iter.Seq2[K, V] {
	return m.Range
}

// A Run is a maximal half-open interval [Beg, End) of keys that all
// map to Val.  An absent Beg or End is unbounded.
type Run[K Ordered[K], V any] struct {
	Beg, End Optional[K]
	Val      V
}

// Contains reports whether key is in [r.Beg, r.End).
func (r Run[K, V]) Contains(key K) bool {
	if r.Beg.OK && key.Compare(r.Beg.Val) < 0 {
		return false
	}
	if r.End.OK && key.Compare(r.End.Val) >= 0 {
		return false
	}
	return true
}

// String implements fmt.Stringer.
func (r Run[K, V]) String() string {
	beg, end := "-∞", "+∞"
	if r.Beg.OK {
		beg = fmt.Sprint(r.Beg.Val)
	}
	if r.End.OK {
		end = fmt.Sprint(r.End.Val)
	}
	return fmt.Sprintf("[%s,%s)=%v", beg, end, r.Val)
}

// Runs returns every run in ascending order, starting with the
// unbounded-below run of the default value.  There is always at
// least one run.
func (m *IntervalMap[K, V]) Runs() iter.Seq[Run[K, V]] {
	return func(yield func(Run[K, V]) bool) {
		cur := Run[K, V]{Val: m.def}
		stopped := false
		m.Range(func(k K, v V) bool {
			cur.End = OptionalValue(k)
			if !yield(cur) {
				stopped = true
				return false
			}
			cur = Run[K, V]{Beg: OptionalValue(k), Val: v}
			return true
		})
		if !stopped {
			yield(cur)
		}
	}
}

// LookupRun returns the run containing key.
func (m *IntervalMap[K, V]) LookupRun(key K) Run[K, V] {
	ret := Run[K, V]{Val: m.def}
	if m.store == nil {
		return ret
	}
	if k, v, ok := m.store.Floor(key); ok {
		ret.Beg = OptionalValue(k)
		ret.Val = v
	}
	if k, _, ok := m.store.Higher(key); ok {
		ret.End = OptionalValue(k)
	}
	return ret
}

// Equal reports whether both maps have the same default value and
// the same boundaries; because both are canonical, that is the same
// as mapping every key to the same value.
func (m *IntervalMap[K, V]) Equal(o *IntervalMap[K, V]) bool {
	if m.def != o.def || m.Len() != o.Len() {
		return false
	}
	m.init()
	o.init()
	if ms, ok := m.store.(*SortedMap[K, V]); ok {
		if oStore, ok := o.store.(*SortedMap[K, V]); ok {
			return ms.Equal(oStore, func(a, b V) bool { return a == b })
		}
	}
	next, stop := iter.Pull2(o.Enumerate())
	defer stop()
	for mk, mv := range m.Enumerate() {
		okey, oval, more := next()
		if !more || mk.Compare(okey) != 0 || mv != oval {
			return false
		}
	}
	return true
}

// String renders the map as "[-∞:def][k1:v1][k2:v2]...".
func (m *IntervalMap[K, V]) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, "[-∞:%v]", m.def)
	m.Range(func(k K, v V) bool {
		fmt.Fprintf(&out, "[%v:%v]", k, v)
		return true
	})
	return out.String()
}
