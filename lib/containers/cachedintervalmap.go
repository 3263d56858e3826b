// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"fmt"
)

// CachedIntervalMap wraps an IntervalMap with an ARC cache of Lookup
// results.  Assign evicts the cached keys that it changes.
//
// It pays off only for workloads where the same keys are looked up
// many times between Assigns; Assign costs an extra O(cache size).
type CachedIntervalMap[K interface {
	comparable
	Compare(K) int
}, V comparable] struct {
	*IntervalMap[K, V]
	cache *LRUCache[K, V]

	Hits, Misses int
}

// NewCachedIntervalMap wraps inner with a cache of up to size Lookup
// results.  It panics if size is not positive.
func NewCachedIntervalMap[K interface {
	comparable
	Compare(K) int
}, V comparable](inner *IntervalMap[K, V], size int) *CachedIntervalMap[K, V] {
	cache, err := NewLRUCache[K, V](size)
	if err != nil {
		panic(fmt.Errorf("containers.NewCachedIntervalMap: size=%d: %w", size, err))
	}
	return &CachedIntervalMap[K, V]{
		IntervalMap: inner,
		cache:       cache,
	}
}

func (m *CachedIntervalMap[K, V]) Lookup(key K) V {
	if val, ok := m.cache.Get(key); ok {
		m.Hits++
		return val
	}
	m.Misses++
	val := m.IntervalMap.Lookup(key)
	m.cache.Add(key, val)
	return val
}

func (m *CachedIntervalMap[K, V]) Assign(beg, end K, val V) {
	if beg.Compare(end) >= 0 {
		return
	}
	for _, key := range m.cache.Keys() {
		if key.Compare(beg) >= 0 && key.Compare(end) < 0 {
			m.cache.Remove(key)
		}
	}
	m.IntervalMap.Assign(beg, end, val)
}
