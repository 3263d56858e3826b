// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package slices_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.lukeshu.com/go/intervalmap/lib/slices"
)

func TestSearch(t *testing.T) {
	t.Parallel()
	haystack := []int{1, 3, 3, 3, 5, 7}
	cmp := func(needle int) func(int) int {
		return func(straw int) int { return needle - straw }
	}

	idx, ok := slices.Search(haystack, cmp(5))
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
	_, ok = slices.Search(haystack, cmp(4))
	assert.False(t, ok)

	idx, ok = slices.SearchLowest(haystack, cmp(3))
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	idx, ok = slices.SearchHighest(haystack, cmp(3))
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = slices.SearchLowest(haystack, cmp(8))
	assert.False(t, ok)
	_, ok = slices.SearchHighest([]int{}, cmp(0))
	assert.False(t, ok)
}

func TestSort(t *testing.T) {
	t.Parallel()
	in := []string{"c", "a", "b"}
	slices.Sort(in)
	assert.Equal(t, []string{"a", "b", "c"}, in)
}
