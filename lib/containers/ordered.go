// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type _Ordered[T any] interface {
	Compare(T) int
}

// Ordered is a type with a total order, expressed as a
// three-way-comparison method: a.Compare(b) is <0 if a<b, 0 if a==b,
// and >0 if a>b.
//
// Nothing else is assumed of an Ordered type; in particular there
// need not be a minimum or maximum value.
type Ordered[T _Ordered[T]] _Ordered[T]

// NativeOrdered adapts one of Go's built-in ordered types to
// implement Ordered.
type NativeOrdered[T constraints.Ordered] struct {
	Val T
}

func NativeCompare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare implements Ordered.
func (a NativeOrdered[T]) Compare(b NativeOrdered[T]) int {
	return NativeCompare(a.Val, b.Val)
}

// String implements fmt.Stringer.
func (a NativeOrdered[T]) String() string {
	return fmt.Sprint(a.Val)
}

var (
	_ Ordered[NativeOrdered[int]] = NativeOrdered[int]{}
	_ fmt.Stringer                = NativeOrdered[int]{}
)
