// Copyright (C) 2023-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.lukeshu.com/go/intervalmap/lib/containers"
)

var _ containers.Ordered[netip.Addr] = netip.Addr{}

func TestNativeCompare(t *testing.T) {
	t.Parallel()
	assert.Equal(t, -1, containers.NativeCompare(1, 2))
	assert.Equal(t, 0, containers.NativeCompare("x", "x"))
	assert.Equal(t, 1, containers.NativeCompare(2.5, -1.0))
	assert.Equal(t, "42", containers.NativeOrdered[int]{Val: 42}.String())
}

// netip.Addr implements Ordered without any wrapper, and has no
// convenient minimum value to use as a sentinel.
func TestIntervalMapAddrKeys(t *testing.T) {
	t.Parallel()
	ip := netip.MustParseAddr
	m := containers.NewIntervalMap[netip.Addr]("internet")
	m.Assign(ip("10.0.0.0"), ip("11.0.0.0"), "private")
	m.Assign(ip("10.1.0.0"), ip("10.2.0.0"), "lab")
	m.Assign(ip("192.168.0.0"), ip("192.169.0.0"), "private")

	assert.Equal(t, "internet", m.Lookup(ip("0.0.0.0")))
	assert.Equal(t, "internet", m.Lookup(ip("9.255.255.255")))
	assert.Equal(t, "private", m.Lookup(ip("10.0.0.1")))
	assert.Equal(t, "lab", m.Lookup(ip("10.1.2.3")))
	assert.Equal(t, "private", m.Lookup(ip("10.2.0.0")))
	assert.Equal(t, "internet", m.Lookup(ip("11.0.0.0")))
	assert.Equal(t, "private", m.Lookup(ip("192.168.1.1")))
	assert.Equal(t, "internet", m.Lookup(ip("255.255.255.255")))
	assert.Equal(t,
		"[-∞:internet][10.0.0.0:private][10.1.0.0:lab][10.2.0.0:private][11.0.0.0:internet][192.168.0.0:private][192.169.0.0:internet]",
		m.String())

	m.Assign(ip("10.0.0.0"), ip("11.0.0.0"), "internet")
	assert.Equal(t, 2, m.Len())
}
