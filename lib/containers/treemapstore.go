// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
)

// TreeMapStore is a BoundaryStore backed by the red-black tree from
// github.com/emirpasic/gods.  That tree wants comparable keys, so
// this is narrower than SortedMap.  The zero TreeMapStore is empty
// and ready to use.
type TreeMapStore[K interface {
	comparable
	Compare(K) int
}, V any] struct {
	inner *rbt.Tree[K, V]
}

var _ BoundaryStore[NativeOrdered[int], string] = (*TreeMapStore[NativeOrdered[int], string])(nil)

func (s *TreeMapStore[K, V]) init() {
	if s.inner == nil {
		s.inner = rbt.NewWith[K, V](func(a, b K) int {
			return a.Compare(b)
		})
	}
}

func unpackTreeMapNode[K comparable, V any](node *rbt.Node[K, V], ok bool) (key K, value V, _ bool) {
	if !ok || node == nil {
		return key, value, false
	}
	return node.Key, node.Value, true
}

func (s *TreeMapStore[K, V]) Len() int {
	if s.inner == nil {
		return 0
	}
	return s.inner.Size()
}

func (s *TreeMapStore[K, V]) Load(key K) (V, bool) {
	s.init()
	return s.inner.Get(key)
}

func (s *TreeMapStore[K, V]) Store(key K, value V) {
	s.init()
	s.inner.Put(key, value)
}

func (s *TreeMapStore[K, V]) Delete(key K) {
	s.init()
	s.inner.Remove(key)
}

func (s *TreeMapStore[K, V]) DeleteRange(beg, end K) {
	s.init()
	for {
		node, ok := s.inner.Ceiling(beg)
		if !ok || node.Key.Compare(end) >= 0 {
			return
		}
		s.inner.Remove(node.Key)
	}
}

func (s *TreeMapStore[K, V]) Floor(key K) (K, V, bool) {
	s.init()
	node, ok := s.inner.Floor(key)
	return unpackTreeMapNode(node, ok)
}

func (s *TreeMapStore[K, V]) Lower(key K) (k K, v V, ok bool) {
	s.init()
	node, found := s.inner.Floor(key)
	if !found {
		return k, v, false
	}
	if node.Key.Compare(key) < 0 {
		return node.Key, node.Value, true
	}
	it := s.inner.IteratorAt(node)
	if !it.Prev() {
		return k, v, false
	}
	return it.Key(), it.Value(), true
}

func (s *TreeMapStore[K, V]) Ceiling(key K) (K, V, bool) {
	s.init()
	node, ok := s.inner.Ceiling(key)
	return unpackTreeMapNode(node, ok)
}

func (s *TreeMapStore[K, V]) Higher(key K) (k K, v V, ok bool) {
	s.init()
	node, found := s.inner.Ceiling(key)
	if !found {
		return k, v, false
	}
	if node.Key.Compare(key) > 0 {
		return node.Key, node.Value, true
	}
	it := s.inner.IteratorAt(node)
	if !it.Next() {
		return k, v, false
	}
	return it.Key(), it.Value(), true
}

func (s *TreeMapStore[K, V]) Range(fn func(K, V) bool) {
	if s.inner == nil {
		return
	}
	it := s.inner.Iterator()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			return
		}
	}
}
