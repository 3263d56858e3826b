// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

// A BoundaryStore is an ordered map from K to V with nearest-key
// queries; it is the storage underneath an IntervalMap.
//
// The nearest-key queries return ok=false if there is no such key.
type BoundaryStore[K Ordered[K], V any] interface {
	Len() int
	Load(K) (V, bool)
	Store(K, V)
	Delete(K)
	// DeleteRange removes every key in [beg, end).
	DeleteRange(beg, end K)

	// Floor finds the greatest key ≤ k.
	Floor(k K) (K, V, bool)
	// Lower finds the greatest key < k.
	Lower(k K) (K, V, bool)
	// Ceiling finds the least key ≥ k.
	Ceiling(k K) (K, V, bool)
	// Higher finds the least key > k.
	Higher(k K) (K, V, bool)

	// Range calls fn for each entry in ascending key order until
	// fn returns false.
	Range(fn func(K, V) bool)
}
