// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBench(t *testing.T) {
	t.Parallel()
	cfg := benchConfig{
		Ops:      500,
		KeySpace: 256,
		MaxLen:   32,
		Values:   3,
		Lookups:  4,
		Seed:     42,
		Check:    true,
	}
	for _, storeName := range storeNames {
		storeName := storeName
		t.Run(storeName, func(t *testing.T) {
			t.Parallel()
			ctx := testContext(t)

			intRes, err := runBench(ctx, storeName, intKeys, cfg)
			require.NoError(t, err)
			assert.Equal(t, cfg.Ops, intRes.Ops)
			assert.Equal(t, cfg.Ops*cfg.Lookups, intRes.Lookups)

			// String keys are ordered the same as int keys, so
			// the same seed gives the same map.
			strRes, err := runBench(ctx, storeName, stringKeys, cfg)
			require.NoError(t, err)
			assert.Equal(t, intRes.Boundaries, strRes.Boundaries)

			cachedCfg := cfg
			cachedCfg.LookupCache = 64
			cachedRes, err := runBench(ctx, storeName, intKeys, cachedCfg)
			require.NoError(t, err)
			assert.Equal(t, intRes.Boundaries, cachedRes.Boundaries)
			assert.Equal(t, cachedRes.Lookups, cachedRes.CacheHits+cachedRes.CacheMisses)
		})
	}
}

func TestBenchConfigErrors(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	_, err := runBench(ctx, storeRBTree, intKeys, benchConfig{KeySpace: 0, MaxLen: 1, Values: 1})
	assert.EqualError(t, err, "--keyspace=0: must be positive")
	_, err = runBench(ctx, "nope", intKeys, benchConfig{KeySpace: 1, MaxLen: 1, Values: 1})
	assert.ErrorContains(t, err, `invalid --store="nope"`)
}

func TestPrintBenchResult(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printBenchResult(&out,
		&globalFlags{store: storeBTree, keys: keysInt},
		benchConfig{KeySpace: 1000, LookupCache: 10},
		benchResult{Ops: 1500, Lookups: 1500, Boundaries: 12, CacheHits: 1, CacheMisses: 3})
	assert.Contains(t, out.String(), "store:      btree (int keys)\n")
	assert.Contains(t, out.String(), "ops:        1,500 assigns + 1,500 lookups in 0s\n")
	assert.Contains(t, out.String(), "boundaries: 12 (keyspace 1,000)\n")
	assert.Contains(t, out.String(), "cache:      25% (1/4) hits\n")
	assert.NotContains(t, out.String(), "throughput")
}
