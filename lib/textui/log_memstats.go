// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package textui

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// LiveMemUse is a fmt.Stringer that reports the process's current
// memory use, re-reading runtime.MemStats at most once per
// LiveMemUseUpdateInterval.
type LiveMemUse struct {
	mu    sync.Mutex
	stats runtime.MemStats
	last  time.Time
}

var _ fmt.Stringer = (*LiveMemUse)(nil)

var LiveMemUseUpdateInterval = Tunable(1 * time.Second)

func (o *LiveMemUse) String() string {
	o.mu.Lock()

	// runtime.ReadMemStats() calls stopTheWorld(), so we want to
	// rate-limit how often we call it.
	if now := time.Now(); now.Sub(o.last) > LiveMemUseUpdateInterval {
		runtime.ReadMemStats(&o.stats)
		o.last = now
	}

	// runtime.MemStats only knows about memory managed by the Go
	// runtime, which is all that an in-memory benchmark cares about.
	//
	// Of the mapped states (see runtime/mem.go), "Prepared" is
	// HeapReleased and "Ready" is Sys-HeapReleased.  Within Ready, we
	// split out what is actually storing data vs heap-fragmentation
	// overhead vs idle.

	var (
		// We're going to add up all of the `o.stats.{thing}Sys`
		// variables and check that against `o.stats.Sys`, in order to
		// make sure that we're not missing any {thing} when adding up
		// `inuse`.
		calcSys = o.stats.HeapSys + o.stats.StackSys + o.stats.MSpanSys + o.stats.MCacheSys + o.stats.BuckHashSys + o.stats.GCSys + o.stats.OtherSys
		inuse   = o.stats.HeapInuse + o.stats.StackInuse + o.stats.MSpanInuse + o.stats.MCacheInuse + o.stats.BuckHashSys + o.stats.GCSys + o.stats.OtherSys
	)
	if calcSys != o.stats.Sys {
		panic("should not happen")
	}
	prepared := o.stats.HeapReleased
	ready := o.stats.Sys - prepared

	readyFragOverhead := o.stats.HeapInuse - o.stats.HeapAlloc
	readyData := inuse - readyFragOverhead
	readyIdle := ready - inuse

	o.mu.Unlock()

	return Sprintf("mem: Ready+Prepared=%.1f (Ready=%.1f (data:%.1f + fragOverhead:%.1f + idle:%.1f) ; Prepared=%.1f)",
		IEC(ready+prepared, "B"),
		IEC(ready, "B"),
		IEC(readyData, "B"),
		IEC(readyFragOverhead, "B"),
		IEC(readyIdle, "B"),
		IEC(prepared, "B"))
}
