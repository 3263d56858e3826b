// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	lru "github.com/hashicorp/golang-lru"
)

// LRUCache is a least-recently-used(ish) cache.  A zero LRUCache is
// not usable; it must be initialized with NewLRUCache.
type LRUCache[K comparable, V any] struct {
	inner *lru.ARCCache
}

// NewLRUCache returns a cache holding up to size entries.  It
// returns an error if size is not positive.
func NewLRUCache[K comparable, V any](size int) (*LRUCache[K, V], error) {
	inner, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &LRUCache[K, V]{inner: inner}, nil
}

func (c *LRUCache[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

func (c *LRUCache[K, V]) Get(key K) (value V, ok bool) {
	_value, ok := c.inner.Get(key)
	if ok {
		//nolint:forcetypeassert // Typed wrapper around untyped lib.
		value = _value.(V)
	}
	return value, ok
}

func (c *LRUCache[K, V]) Keys() []K {
	untyped := c.inner.Keys()
	typed := make([]K, len(untyped))
	for i := range untyped {
		//nolint:forcetypeassert // Typed wrapper around untyped lib.
		typed[i] = untyped[i].(K)
	}
	return typed
}

func (c *LRUCache[K, V]) Remove(key K) {
	c.inner.Remove(key)
}
