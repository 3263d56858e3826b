// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package profile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lukeshu.com/go/intervalmap/lib/profile"
)

func TestProfile(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	stop, err := profile.Profile(&buf, profile.ProfileHeap)
	require.NoError(t, err)
	assert.Zero(t, buf.Len())
	require.NoError(t, stop())
	assert.NotZero(t, buf.Len())

	assert.Contains(t, profile.Profiles(), profile.ProfileGoroutine)
}

func TestAddProfileFlags(t *testing.T) {
	t.Parallel()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	stop := profile.AddProfileFlags(flags, "profile.")
	for _, name := range []string{"cpu", "trace", "goroutine", "threadcreate", "heap", "allocs", "block", "mutex"} {
		assert.NotNilf(t, flags.Lookup("profile."+name), "flag %q", name)
	}

	filename := filepath.Join(t.TempDir(), "heap.pprof")
	require.NoError(t, flags.Parse([]string{"--profile.heap=" + filename}))
	require.NoError(t, stop())
	st, err := os.Stat(filename)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}
