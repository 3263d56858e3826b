// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"git.lukeshu.com/go/intervalmap/lib/slices"
)

// SliceStore is a BoundaryStore backed by a sorted slice.  Lookups
// are O(log n) but updates are O(n); it does well for maps with few
// boundaries.  The zero SliceStore is empty and ready to use.
type SliceStore[K Ordered[K], V any] struct {
	items []orderedKV[K, V]
}

var _ BoundaryStore[NativeOrdered[int], string] = (*SliceStore[NativeOrdered[int], string])(nil)

// floorIdx returns the index of the last item with a key ≤ key (or <
// key if !inclusive).
func (s *SliceStore[K, V]) floorIdx(key K, inclusive bool) (int, bool) {
	return slices.SearchHighest(s.items, func(kv orderedKV[K, V]) int {
		if c := kv.K.Compare(key); c < 0 || (inclusive && c == 0) {
			return 0
		}
		return -1
	})
}

// ceilingIdx returns the index of the first item with a key ≥ key (or
// > key if !inclusive).  If there is no such item, it returns
// len(s.items).
func (s *SliceStore[K, V]) ceilingIdx(key K, inclusive bool) int {
	idx, ok := slices.SearchLowest(s.items, func(kv orderedKV[K, V]) int {
		if c := kv.K.Compare(key); c < 0 || (!inclusive && c == 0) {
			return 1
		}
		return 0
	})
	if !ok {
		return len(s.items)
	}
	return idx
}

func (s *SliceStore[K, V]) at(idx int, ok bool) (k K, v V, _ bool) {
	if !ok {
		return k, v, false
	}
	return s.items[idx].K, s.items[idx].V, true
}

func (s *SliceStore[K, V]) Len() int {
	return len(s.items)
}

func (s *SliceStore[K, V]) Load(key K) (V, bool) {
	idx, ok := slices.Search(s.items, func(kv orderedKV[K, V]) int {
		return key.Compare(kv.K)
	})
	_, v, ok := s.at(idx, ok)
	return v, ok
}

func (s *SliceStore[K, V]) Store(key K, value V) {
	idx := s.ceilingIdx(key, true)
	if idx < len(s.items) && s.items[idx].K.Compare(key) == 0 {
		s.items[idx].V = value
		return
	}
	s.items = append(s.items, orderedKV[K, V]{})
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = orderedKV[K, V]{K: key, V: value}
}

func (s *SliceStore[K, V]) Delete(key K) {
	idx := s.ceilingIdx(key, true)
	if idx < len(s.items) && s.items[idx].K.Compare(key) == 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
}

func (s *SliceStore[K, V]) DeleteRange(beg, end K) {
	lo := s.ceilingIdx(beg, true)
	hi := s.ceilingIdx(end, true)
	if lo < hi {
		s.items = append(s.items[:lo], s.items[hi:]...)
	}
}

func (s *SliceStore[K, V]) Floor(key K) (K, V, bool) {
	return s.at(s.floorIdx(key, true))
}

func (s *SliceStore[K, V]) Lower(key K) (K, V, bool) {
	return s.at(s.floorIdx(key, false))
}

func (s *SliceStore[K, V]) Ceiling(key K) (K, V, bool) {
	idx := s.ceilingIdx(key, true)
	return s.at(idx, idx < len(s.items))
}

func (s *SliceStore[K, V]) Higher(key K) (K, V, bool) {
	idx := s.ceilingIdx(key, false)
	return s.at(idx, idx < len(s.items))
}

func (s *SliceStore[K, V]) Range(fn func(K, V) bool) {
	for _, kv := range s.items {
		if !fn(kv.K, kv.V) {
			return
		}
	}
}
