// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package maps implements generic (type-parameterized) utilities for
// working with simple Go maps.
package maps

import (
	"golang.org/x/exp/constraints"

	"git.lukeshu.com/go/intervalmap/lib/slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	slices.Sort(ret)
	return ret
}
