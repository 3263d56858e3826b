// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.lukeshu.com/go/intervalmap/lib/containers"
	"git.lukeshu.com/go/intervalmap/lib/maps"
)

type storeResult struct {
	Key int
	Val rune
	OK  bool
}

func storeRes(key intKey, val rune, ok bool) storeResult {
	if !ok {
		return storeResult{}
	}
	return storeResult{Key: key.Val, Val: val, OK: true}
}

// checkStore compares a BoundaryStore against a plain map, for every
// key in [lo, hi].
func checkStore(t *testing.T, exp map[int]rune, store containers.BoundaryStore[intKey, rune], lo, hi int) {
	t.Helper()
	require.Equal(t, len(exp), store.Len())

	sorted := maps.SortedKeys(exp)
	var act []int
	store.Range(func(key intKey, val rune) bool {
		require.Equal(t, exp[key.Val], val)
		act = append(act, key.Val)
		return true
	})
	if len(sorted) == 0 {
		require.Empty(t, act)
	} else {
		require.Equal(t, sorted, act)
	}

	find := func(pred func(int) bool, last bool) storeResult {
		var ret storeResult
		for _, key := range sorted {
			if pred(key) {
				ret = storeResult{Key: key, Val: exp[key], OK: true}
				if !last {
					break
				}
			}
		}
		return ret
	}
	for i := lo; i <= hi; i++ {
		i := i
		val, ok := store.Load(k(i))
		expVal, expOK := exp[i]
		require.Equalf(t, expOK, ok, "Load(%d)", i)
		require.Equalf(t, expVal, val, "Load(%d)", i)

		require.Equalf(t, find(func(key int) bool { return key <= i }, true), storeRes(store.Floor(k(i))), "Floor(%d)", i)
		require.Equalf(t, find(func(key int) bool { return key < i }, true), storeRes(store.Lower(k(i))), "Lower(%d)", i)
		require.Equalf(t, find(func(key int) bool { return key >= i }, false), storeRes(store.Ceiling(k(i))), "Ceiling(%d)", i)
		require.Equalf(t, find(func(key int) bool { return key > i }, false), storeRes(store.Higher(k(i))), "Higher(%d)", i)
	}
}

func TestBoundaryStores(t *testing.T) {
	t.Parallel()
	for _, store := range testStores {
		store := store
		t.Run(store.Name, func(t *testing.T) {
			t.Parallel()
			s := store.New()
			exp := make(map[int]rune)
			checkStore(t, exp, s, -1, 21)

			for _, i := range []int{10, 2, 18, 6, 14, 4, 12} {
				s.Store(k(i), 'a'+rune(i))
				exp[i] = 'a' + rune(i)
			}
			checkStore(t, exp, s, -1, 21)

			s.Store(k(6), 'z')
			exp[6] = 'z'
			checkStore(t, exp, s, -1, 21)

			s.Delete(k(7))
			s.Delete(k(18))
			delete(exp, 18)
			checkStore(t, exp, s, -1, 21)

			s.DeleteRange(k(4), k(12))
			delete(exp, 4)
			delete(exp, 6)
			delete(exp, 10)
			checkStore(t, exp, s, -1, 21)

			s.DeleteRange(k(12), k(12))
			s.DeleteRange(k(20), k(0))
			checkStore(t, exp, s, -1, 21)

			s.DeleteRange(k(-100), k(100))
			checkStore(t, map[int]rune{}, s, -1, 21)
		})
	}
}

func FuzzBoundaryStores(f *testing.F) {
	const (
		opStore  = 0b0000_0000
		opDelete = 0b0100_0000
		opRange  = 0b1000_0000
	)
	f.Add([]byte{})
	f.Add([]byte{opStore | 5, opStore | 9, opRange | 4, 6, opDelete | 9})
	f.Add([]byte{opStore | 1, opStore | 2, opStore | 3, opRange | 0, 63})

	f.Fuzz(func(t *testing.T, dat []byte) {
		stores := make([]containers.BoundaryStore[intKey, rune], len(testStores))
		for i := range testStores {
			stores[i] = testStores[i].New()
		}
		exp := make(map[int]rune)
		for len(dat) > 0 {
			op, arg := dat[0]&0b1100_0000, int(dat[0]&0b0011_1111)
			dat = dat[1:]
			switch op {
			case opStore:
				for _, s := range stores {
					s.Store(k(arg), rune(len(dat)))
				}
				exp[arg] = rune(len(dat))
			case opDelete:
				for _, s := range stores {
					s.Delete(k(arg))
				}
				delete(exp, arg)
			default:
				if len(dat) == 0 {
					continue
				}
				end := int(dat[0] & 0b0011_1111)
				dat = dat[1:]
				for _, s := range stores {
					s.DeleteRange(k(arg), k(end))
				}
				for key := range exp {
					if arg <= key && key < end {
						delete(exp, key)
					}
				}
			}
		}
		for i, s := range stores {
			t.Logf("checking %s", testStores[i].Name)
			checkStore(t, exp, s, -1, 0b0100_0000)
		}
	})
}
