// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"github.com/tidwall/btree"
)

// BTreeStore is a BoundaryStore backed by the B-tree from
// github.com/tidwall/btree.  The zero BTreeStore is empty and ready
// to use.
type BTreeStore[K Ordered[K], V any] struct {
	inner *btree.BTreeG[orderedKV[K, V]]
}

var _ BoundaryStore[NativeOrdered[int], string] = (*BTreeStore[NativeOrdered[int], string])(nil)

func (s *BTreeStore[K, V]) init() {
	if s.inner == nil {
		s.inner = btree.NewBTreeG(func(a, b orderedKV[K, V]) bool {
			return a.K.Compare(b.K) < 0
		})
	}
}

func pivot[K Ordered[K], V any](key K) orderedKV[K, V] {
	return orderedKV[K, V]{K: key}
}

func (s *BTreeStore[K, V]) Len() int {
	if s.inner == nil {
		return 0
	}
	return s.inner.Len()
}

func (s *BTreeStore[K, V]) Load(key K) (V, bool) {
	s.init()
	kv, ok := s.inner.Get(pivot[K, V](key))
	return kv.V, ok
}

func (s *BTreeStore[K, V]) Store(key K, value V) {
	s.init()
	s.inner.Set(orderedKV[K, V]{K: key, V: value})
}

func (s *BTreeStore[K, V]) Delete(key K) {
	s.init()
	s.inner.Delete(pivot[K, V](key))
}

func (s *BTreeStore[K, V]) DeleteRange(beg, end K) {
	s.init()
	var doomed []orderedKV[K, V]
	s.inner.Ascend(pivot[K, V](beg), func(kv orderedKV[K, V]) bool {
		if kv.K.Compare(end) >= 0 {
			return false
		}
		doomed = append(doomed, kv)
		return true
	})
	for _, kv := range doomed {
		s.inner.Delete(kv)
	}
}

// seek returns the first item visited by walk (Ascend or Descend)
// from key, skipping an item equal to key unless inclusive.
func (s *BTreeStore[K, V]) seek(walk func(orderedKV[K, V], func(orderedKV[K, V]) bool), key K, inclusive bool) (k K, v V, ok bool) {
	walk(pivot[K, V](key), func(kv orderedKV[K, V]) bool {
		if !inclusive && kv.K.Compare(key) == 0 {
			return true
		}
		k, v, ok = kv.K, kv.V, true
		return false
	})
	return k, v, ok
}

func (s *BTreeStore[K, V]) Floor(key K) (K, V, bool) {
	s.init()
	return s.seek(s.inner.Descend, key, true)
}

func (s *BTreeStore[K, V]) Lower(key K) (K, V, bool) {
	s.init()
	return s.seek(s.inner.Descend, key, false)
}

func (s *BTreeStore[K, V]) Ceiling(key K) (K, V, bool) {
	s.init()
	return s.seek(s.inner.Ascend, key, true)
}

func (s *BTreeStore[K, V]) Higher(key K) (K, V, bool) {
	s.init()
	return s.seek(s.inner.Ascend, key, false)
}

func (s *BTreeStore[K, V]) Range(fn func(K, V) bool) {
	if s.inner == nil {
		return
	}
	s.inner.Scan(func(kv orderedKV[K, V]) bool {
		return fn(kv.K, kv.V)
	})
}
