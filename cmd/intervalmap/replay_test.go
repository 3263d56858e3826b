// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lukeshu.com/go/intervalmap/lib/containers"
	"git.lukeshu.com/go/intervalmap/lib/textui"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	var out bytes.Buffer
	t.Cleanup(func() {
		t.Log(out.String())
	})
	return dlog.WithLogger(context.Background(), textui.NewLogger(&out, dlog.LogLevelDebug))
}

const scenarioScript = `{
	"default": "a",
	"ops": [
		{"op": "assign", "beg": "3", "end": "5", "val": "b"},
		{"op": "print"},
		{"op": "assign", "beg": "2", "end": "3", "val": "c"},
		{"op": "assign", "beg": "2", "end": "3", "val": "d"},
		{"op": "assign", "beg": "2", "end": "4", "val": "e"},
		{"op": "assign", "beg": "9", "end": "1", "val": "z"},
		{"op": "print"},
		{"op": "lookup", "key": "1"},
		{"op": "lookup", "key": "3"},
		{"op": "lookup", "key": "4"},
		{"op": "lookup", "key": "5"}
	]
}
`

func writeScript(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "script.json")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestReplay(t *testing.T) {
	t.Parallel()
	for _, storeName := range storeNames {
		storeName := storeName
		t.Run(storeName, func(t *testing.T) {
			t.Parallel()
			ctx := testContext(t)
			script, err := readJSONFile[replayScript](ctx, writeScript(t, scenarioScript))
			require.NoError(t, err)
			require.Len(t, script.Ops, 11)

			var out bytes.Buffer
			dump, err := replayAndDump(ctx, &out, storeName, intKeys, script)
			require.NoError(t, err)
			assert.Equal(t, ""+
				"[-∞:a][3:b][5:a]\n"+
				"[-∞:a][2:e][4:b][5:a]\n"+
				"1 => a\n"+
				"3 => e\n"+
				"4 => b\n"+
				"5 => a\n",
				out.String())

			assert.Equal(t, mapDump{
				Default:    "a",
				Boundaries: 3,
				Runs: []mapDumpRun{
					{End: containers.OptionalValue("2"), Val: "a"},
					{Beg: containers.OptionalValue("2"), End: containers.OptionalValue("4"), Val: "e"},
					{Beg: containers.OptionalValue("4"), End: containers.OptionalValue("5"), Val: "b"},
					{Beg: containers.OptionalValue("5"), Val: "a"},
				},
			}, dump)
		})
	}
}

func TestReplayStringKeys(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	m, err := newMap[containers.NativeOrdered[string]](storeBTree, "none")
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, replay(ctx, &out, m, stringKeys, []replayOp{
		{Op: "assign", Beg: "", End: "m", Val: "low"},
		{Op: "lookup", Key: ""},
		{Op: "lookup", Key: "m"},
	}))
	assert.Equal(t, " => low\nm => none\n", out.String())
}

func TestReplayErrors(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	m, err := newMap[containers.NativeOrdered[int]](storeRBTree, "a")
	require.NoError(t, err)
	var out bytes.Buffer

	assert.EqualError(t,
		replay(ctx, &out, m, intKeys, []replayOp{{Op: "print"}, {Op: "frobnicate"}}),
		`op 1: unknown op "frobnicate"`)
	assert.ErrorContains(t,
		replay(ctx, &out, m, intKeys, []replayOp{{Op: "assign", Beg: "x", End: "2"}}),
		"op 0: beg: invalid int key")
	assert.ErrorContains(t,
		replay(ctx, &out, m, intKeys, []replayOp{{Op: "lookup", Key: "1.5"}}),
		"op 0: key: invalid int key")

	_, err = newMap[containers.NativeOrdered[int]]("splay", "a")
	assert.ErrorContains(t, err, `invalid --store="splay"`)

	_, err = readJSONFile[replayScript](ctx, writeScript(t, `{"default": "a", "ops": [`))
	assert.Error(t, err)
}

func TestWriteDump(t *testing.T) {
	t.Parallel()
	m := containers.NewIntervalMap[containers.NativeOrdered[int]]("a")
	m.Assign(containers.NativeOrdered[int]{Val: 3}, containers.NativeOrdered[int]{Val: 5}, "b")

	var out bytes.Buffer
	require.NoError(t, writeJSONFile(&out, dumpMap(m), dumpJSONConfig))
	assert.JSONEq(t, `{
		"default": "a",
		"boundaries": 2,
		"runs": [
			{"beg": null, "end": "3", "val": "a"},
			{"beg": "3", "end": "5", "val": "b"},
			{"beg": "5", "end": null, "val": "a"}
		]
	}`, out.String())
	assert.Equal(t, byte('\n'), out.Bytes()[out.Len()-1])
}
