// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

type orderedKV[K Ordered[K], V any] struct {
	K K
	V V
}

// SortedMap is a map whose keys are kept in order, backed by an
// RBTree.  The zero SortedMap is empty and ready to use.
type SortedMap[K Ordered[K], V any] struct {
	inner RBTree[K, orderedKV[K, V]]
}

var _ BoundaryStore[NativeOrdered[int], string] = (*SortedMap[NativeOrdered[int], string])(nil)

func (m *SortedMap[K, V]) init() {
	if m.inner.KeyFn == nil {
		m.inner.KeyFn = m.keyFn
	}
}

func (m *SortedMap[K, V]) keyFn(kv orderedKV[K, V]) K {
	return kv.K
}

func unpackKV[K Ordered[K], V any](node *RBNode[orderedKV[K, V]]) (key K, value V, ok bool) {
	if node == nil {
		return key, value, false
	}
	return node.Value.K, node.Value.V, true
}

func (m *SortedMap[K, V]) Len() int {
	return m.inner.Len()
}

func (m *SortedMap[K, V]) Delete(key K) {
	m.init()
	m.inner.Delete(key)
}

// DeleteRange removes every entry with a key in [beg, end).
func (m *SortedMap[K, V]) DeleteRange(beg, end K) {
	m.init()
	var doomed []*RBNode[orderedKV[K, V]]
	m.inner.Subrange(
		func(k K) int {
			switch {
			case k.Compare(beg) < 0:
				return 1
			case k.Compare(end) >= 0:
				return -1
			default:
				return 0
			}
		},
		func(node *RBNode[orderedKV[K, V]]) bool {
			doomed = append(doomed, node)
			return true
		})
	for _, node := range doomed {
		m.inner.DeleteNode(node)
	}
}

func (m *SortedMap[K, V]) Load(key K) (value V, ok bool) {
	m.init()
	_, value, ok = unpackKV(m.inner.Lookup(key))
	return value, ok
}

func (m *SortedMap[K, V]) Floor(key K) (K, V, bool) {
	m.init()
	return unpackKV(m.inner.Floor(key))
}

func (m *SortedMap[K, V]) Lower(key K) (K, V, bool) {
	m.init()
	return unpackKV(m.inner.Lower(key))
}

func (m *SortedMap[K, V]) Ceiling(key K) (K, V, bool) {
	m.init()
	return unpackKV(m.inner.Ceiling(key))
}

func (m *SortedMap[K, V]) Higher(key K) (K, V, bool) {
	m.init()
	return unpackKV(m.inner.Higher(key))
}

func (m *SortedMap[K, V]) Range(f func(key K, value V) bool) {
	m.init()
	m.inner.Range(func(node *RBNode[orderedKV[K, V]]) bool {
		return f(node.Value.K, node.Value.V)
	})
}

// Equal reports whether both maps hold the same keys, with eqFn
// reporting true for the values stored under each key.
func (m *SortedMap[K, V]) Equal(o *SortedMap[K, V], eqFn func(a, b V) bool) bool {
	m.init()
	o.init()
	return m.inner.Equal(&o.inner, func(a, b orderedKV[K, V]) bool {
		return eqFn(a.V, b.V)
	})
}

func (m *SortedMap[K, V]) Store(key K, value V) {
	m.init()
	m.inner.Insert(orderedKV[K, V]{
		K: key,
		V: value,
	})
}
