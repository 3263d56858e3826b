// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"strconv"
	"strings"

	"git.lukeshu.com/go/intervalmap/lib/containers"
)

const (
	storeRBTree  = "rbtree"
	storeTreeMap = "treemap"
	storeBTree   = "btree"
	storeSlice   = "slice"

	keysInt    = "int"
	keysString = "string"
)

var (
	storeNames = []string{storeRBTree, storeTreeMap, storeBTree, storeSlice}
	keyNames   = []string{keysInt, keysString}
)

func quoteList(strs []string) string {
	quoted := make([]string, len(strs))
	for i, str := range strs {
		quoted[i] = strconv.Quote(str)
	}
	return strings.Join(quoted, ", ")
}

type key[K any] interface {
	comparable
	Compare(K) int
}

// A keyCodec is how the command line spells keys of type K.
type keyCodec[K key[K]] struct {
	// Parse parses a key as written in a replay script.
	Parse func(string) (K, error)
	// FromIndex returns the n-th key; FromIndex(a) < FromIndex(b)
	// iff a < b.
	FromIndex func(int) K
}

var intKeys = keyCodec[containers.NativeOrdered[int]]{
	Parse: func(str string) (containers.NativeOrdered[int], error) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return containers.NativeOrdered[int]{}, fmt.Errorf("invalid int key: %w", err)
		}
		return containers.NativeOrdered[int]{Val: n}, nil
	},
	FromIndex: func(n int) containers.NativeOrdered[int] {
		return containers.NativeOrdered[int]{Val: n}
	},
}

var stringKeys = keyCodec[containers.NativeOrdered[string]]{
	Parse: func(str string) (containers.NativeOrdered[string], error) {
		return containers.NativeOrdered[string]{Val: str}, nil
	},
	FromIndex: func(n int) containers.NativeOrdered[string] {
		// Zero-padded, so that lexical order is numeric order
		// for non-negative n.
		return containers.NativeOrdered[string]{Val: fmt.Sprintf("k%019d", n)}
	},
}

func newStore[K key[K], V any](name string) (containers.BoundaryStore[K, V], error) {
	switch name {
	case storeRBTree:
		return new(containers.SortedMap[K, V]), nil
	case storeTreeMap:
		return new(containers.TreeMapStore[K, V]), nil
	case storeBTree:
		return new(containers.BTreeStore[K, V]), nil
	case storeSlice:
		return new(containers.SliceStore[K, V]), nil
	default:
		return nil, fmt.Errorf("invalid --store=%q: must be one of %s", name, quoteList(storeNames))
	}
}

func newMap[K key[K], V comparable](storeName string, def V) (*containers.IntervalMap[K, V], error) {
	store, err := newStore[K, V](storeName)
	if err != nil {
		return nil, err
	}
	return containers.NewIntervalMapWithStore(def, store), nil
}

func invalidKeysErr(name string) error {
	return fmt.Errorf("invalid --keys=%q: must be one of %s", name, quoteList(keyNames))
}
