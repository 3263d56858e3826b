// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"math/rand"
	"os"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"git.lukeshu.com/go/intervalmap/lib/containers"
	"git.lukeshu.com/go/intervalmap/lib/profile"
	"git.lukeshu.com/go/intervalmap/lib/textui"
)

type benchConfig struct {
	Ops         int
	KeySpace    int
	MaxLen      int
	Values      int
	Lookups     int
	LookupCache int
	Seed        int64
	Check       bool
}

type benchResult struct {
	Ops, Lookups int
	Boundaries   int
	Elapsed      time.Duration
	CacheHits    int
	CacheMisses  int
}

type benchStats struct {
	Portion    textui.Portion[int]
	Boundaries int
}

func (s benchStats) String() string {
	return textui.Sprintf("assigned %v; %d boundaries", s.Portion, s.Boundaries)
}

// benchMap is the part of an interval map that the benchmark drives;
// it is implemented by both IntervalMap and CachedIntervalMap.
type benchMap[K any] interface {
	Assign(beg, end K, val int)
	Lookup(K) int
	Len() int
	Enumerate() iter.Seq2[K, int]
}

func init() {
	cfg := benchConfig{
		Ops:      100_000,
		KeySpace: 1 << 20,
		MaxLen:   1000,
		Values:   4,
		Lookups:  1,
		Seed:     1,
	}
	cmd := subcommand{
		Command: cobra.Command{
			Use:   "bench",
			Short: "Run a random workload against an interval map",
			Long: "" +
				"Each op assigns a random value to a random range of keys, " +
				"then looks up --lookups random keys.  With --check, every " +
				"lookup is compared against a dense reference array, and " +
				"the whole map is verified at the end.",
			Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		},
	}
	stopProfiling := profile.AddProfileFlags(cmd.Flags(), "profile.")
	cmd.RunE = func(flags *globalFlags, cmd *cobra.Command, _ []string) (err error) {
		defer func() {
			if _err := stopProfiling(); _err != nil && err == nil {
				err = _err
			}
		}()
		ctx := cmd.Context()
		ctx = dlog.WithField(ctx, "mem", new(textui.LiveMemUse))

		var res benchResult
		switch flags.keys {
		case keysInt:
			res, err = runBench(ctx, flags.store, intKeys, cfg)
		case keysString:
			res, err = runBench(ctx, flags.store, stringKeys, cfg)
		default:
			err = invalidKeysErr(flags.keys)
		}
		if err != nil {
			return err
		}
		printBenchResult(os.Stdout, flags, cfg, res)
		return nil
	}

	cmd.Flags().IntVar(&cfg.Ops, "ops", cfg.Ops, "perform `N` assign operations")
	cmd.Flags().IntVar(&cfg.KeySpace, "keyspace", cfg.KeySpace, "draw keys from the first `N` keys")
	cmd.Flags().IntVar(&cfg.MaxLen, "max-len", cfg.MaxLen, "assign ranges of at most `N` keys")
	cmd.Flags().IntVar(&cfg.Values, "values", cfg.Values, "draw values from `N` distinct values")
	cmd.Flags().IntVar(&cfg.Lookups, "lookups", cfg.Lookups, "perform `N` lookups after each assign")
	cmd.Flags().IntVar(&cfg.LookupCache, "lookup-cache", cfg.LookupCache, "cache up to `N` lookup results (0 to disable)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed the random number generator with `N`")
	cmd.Flags().BoolVar(&cfg.Check, "check", cfg.Check, "verify every result against a dense reference")
	subcommands = append(subcommands, cmd)
}

func (cfg benchConfig) validate() error {
	switch {
	case cfg.Ops < 0:
		return fmt.Errorf("--ops=%d: must not be negative", cfg.Ops)
	case cfg.KeySpace < 1:
		return fmt.Errorf("--keyspace=%d: must be positive", cfg.KeySpace)
	case cfg.MaxLen < 1:
		return fmt.Errorf("--max-len=%d: must be positive", cfg.MaxLen)
	case cfg.Values < 1:
		return fmt.Errorf("--values=%d: must be positive", cfg.Values)
	case cfg.Lookups < 0:
		return fmt.Errorf("--lookups=%d: must not be negative", cfg.Lookups)
	case cfg.LookupCache < 0:
		return fmt.Errorf("--lookup-cache=%d: must not be negative", cfg.LookupCache)
	}
	return nil
}

func runBench[K key[K]](ctx context.Context, storeName string, codec keyCodec[K], cfg benchConfig) (benchResult, error) {
	if err := cfg.validate(); err != nil {
		return benchResult{}, err
	}
	inner, err := newMap[K](storeName, 0)
	if err != nil {
		return benchResult{}, err
	}
	var m benchMap[K] = inner
	var cached *containers.CachedIntervalMap[K, int]
	if cfg.LookupCache > 0 {
		cached = containers.NewCachedIntervalMap(inner, cfg.LookupCache)
		m = cached
	}
	var ref []int
	if cfg.Check {
		ref = make([]int, cfg.KeySpace)
	}

	//nolint:gosec // A benchmark wants a reproducible sequence, not a secure one.
	rng := rand.New(rand.NewSource(cfg.Seed))

	ctx = dlog.WithField(ctx, "intervalmap.bench.step", "run")
	dlog.Infof(ctx, "Running %d ops over %d keys...", cfg.Ops, cfg.KeySpace)
	progressWriter := textui.NewProgress[benchStats](ctx, dlog.LogLevelInfo, textui.Tunable(1*time.Second))
	start := time.Now()
	var res benchResult
	for i := 0; i < cfg.Ops; i++ {
		if err := ctx.Err(); err != nil {
			progressWriter.Done()
			return res, err
		}
		beg := rng.Intn(cfg.KeySpace)
		end := beg + 1 + rng.Intn(cfg.MaxLen)
		if end > cfg.KeySpace {
			end = cfg.KeySpace
		}
		val := rng.Intn(cfg.Values)
		m.Assign(codec.FromIndex(beg), codec.FromIndex(end), val)
		for j := beg; ref != nil && j < end; j++ {
			ref[j] = val
		}
		res.Ops++

		for j := 0; j < cfg.Lookups; j++ {
			idx := rng.Intn(cfg.KeySpace)
			got := m.Lookup(codec.FromIndex(idx))
			res.Lookups++
			if ref != nil && got != ref[idx] {
				progressWriter.Done()
				return res, fmt.Errorf("op %d: Lookup(%v) = %v, expected %v",
					i, codec.FromIndex(idx), got, ref[idx])
			}
		}
		progressWriter.Set(benchStats{
			Portion:    textui.Portion[int]{N: i + 1, D: cfg.Ops},
			Boundaries: m.Len(),
		})
	}
	progressWriter.Done()
	res.Elapsed = time.Since(start)
	res.Boundaries = m.Len()
	if cached != nil {
		res.CacheHits, res.CacheMisses = cached.Hits, cached.Misses
	}
	dlog.Info(ctx, "... done running")

	if ref != nil {
		ctx := dlog.WithField(ctx, "intervalmap.bench.step", "verify")
		dlog.Info(ctx, "Verifying...")
		if err := verifyBench(ctx, m, codec, ref); err != nil {
			return res, err
		}
		dlog.Info(ctx, "... done verifying")
	}
	return res, nil
}

func verifyBench[K key[K]](ctx context.Context, m benchMap[K], codec keyCodec[K], ref []int) error {
	{
		ctx := dlog.WithField(ctx, "intervalmap.bench.substep", "lookup")
		dlog.Debugf(ctx, "checking all %d keys", len(ref))
		for i, exp := range ref {
			if got := m.Lookup(codec.FromIndex(i)); got != exp {
				return fmt.Errorf("verify: Lookup(%v) = %v, expected %v", codec.FromIndex(i), got, exp)
			}
		}
	}
	{
		ctx := dlog.WithField(ctx, "intervalmap.bench.substep", "canonical")
		dlog.Debugf(ctx, "checking %d boundaries", m.Len())
		prevVal := 0 // the default
		first := true
		var prevKey K
		for key, val := range m.Enumerate() {
			if !first && prevKey.Compare(key) >= 0 {
				return fmt.Errorf("verify: boundary %v is not after boundary %v", key, prevKey)
			}
			if val == prevVal {
				return fmt.Errorf("verify: boundary %v repeats value %v", key, val)
			}
			prevKey, prevVal, first = key, val, false
		}
	}
	return nil
}

func printBenchResult(out io.Writer, flags *globalFlags, cfg benchConfig, res benchResult) {
	secs := res.Elapsed.Seconds()
	textui.Fprintf(out, "store:      %s (%s keys)\n", flags.store, flags.keys)
	textui.Fprintf(out, "ops:        %d assigns + %d lookups in %v\n", res.Ops, res.Lookups, res.Elapsed)
	if secs > 0 {
		textui.Fprintf(out, "throughput: %.3v\n", textui.Metric(float64(res.Ops+res.Lookups)/secs, "ops/s"))
	}
	textui.Fprintf(out, "boundaries: %d (keyspace %d)\n", res.Boundaries, cfg.KeySpace)
	if cfg.LookupCache > 0 {
		textui.Fprintf(out, "cache:      %v hits\n", textui.Portion[int]{N: res.CacheHits, D: res.CacheHits + res.CacheMisses})
	}
}
