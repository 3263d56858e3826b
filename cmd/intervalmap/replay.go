// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"git.lukeshu.com/go/intervalmap/lib/containers"
	"git.lukeshu.com/go/intervalmap/lib/textui"
)

type replayScript struct {
	Default string     `json:"default"`
	Ops     []replayOp `json:"ops"`
}

type replayOp struct {
	Op  string `json:"op"`
	Beg string `json:"beg,omitempty"`
	End string `json:"end,omitempty"`
	Key string `json:"key,omitempty"`
	Val string `json:"val,omitempty"`
}

// mapDump is the JSON form of an interval map written by
// `replay --dump`.
type mapDump struct {
	Default    string       `json:"default"`
	Boundaries int          `json:"boundaries"`
	Runs       []mapDumpRun `json:"runs"`
}

type mapDumpRun struct {
	Beg containers.Optional[string] `json:"beg"`
	End containers.Optional[string] `json:"end"`
	Val string                      `json:"val"`
}

var dumpJSONConfig = lowmemjson.ReEncoderConfig{
	Indent:                "\t",
	ForceTrailingNewlines: true,
	CompactIfUnder:        80, //nolint:gomnd // This is what looks nice.
}

func init() {
	var dumpFlag string
	var spewFlag bool
	cmd := subcommand{
		Command: cobra.Command{
			Use:   "replay SCRIPT.json",
			Short: "Run a script of operations against an interval map",
			Long: "" +
				"The script is a JSON object:\n" +
				"\n" +
				"\t{\"default\": V, \"ops\": [OP...]}\n" +
				"\n" +
				"where each OP is one of\n" +
				"\n" +
				"\t{\"op\": \"assign\", \"beg\": K, \"end\": K, \"val\": V}\n" +
				"\t{\"op\": \"lookup\", \"key\": K}\n" +
				"\t{\"op\": \"print\"}\n" +
				"\n" +
				"Keys are JSON strings, parsed according to --keys.  Values " +
				"are JSON strings.  The results of lookup and print are " +
				"written to stdout.",
			Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		},
		RunE: func(flags *globalFlags, cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dlog.Infof(ctx, "Reading %q...", args[0])
			script, err := readJSONFile[replayScript](ctx, args[0])
			if err != nil {
				return err
			}
			dlog.Infof(ctx, "... done reading %d ops", len(script.Ops))

			var dump mapDump
			switch flags.keys {
			case keysInt:
				dump, err = replayAndDump(ctx, os.Stdout, flags.store, intKeys, script)
			case keysString:
				dump, err = replayAndDump(ctx, os.Stdout, flags.store, stringKeys, script)
			default:
				err = invalidKeysErr(flags.keys)
			}
			if err != nil {
				return err
			}

			if spewFlag {
				spew := spew.NewDefaultConfig()
				spew.DisablePointerAddresses = true
				spew.DisableCapacities = true
				spew.Fdump(os.Stdout, dump)
			}

			if dumpFlag != "" {
				dlog.Infof(ctx, "Writing map to %q...", dumpFlag)
				fh, err := createFile(dumpFlag)
				if err != nil {
					return err
				}
				if err := writeJSONFile(fh, dump, dumpJSONConfig); err != nil {
					_ = fh.Close()
					return err
				}
				if err := fh.Close(); err != nil {
					return err
				}
				dlog.Info(ctx, "... done writing")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dumpFlag, "dump", "", "write the final map as JSON to `file.json` (\"-\" for stdout)")
	if err := cmd.MarkFlagFilename("dump"); err != nil {
		panic(err)
	}
	cmd.Flags().BoolVar(&spewFlag, "spew", false, "dump the final map to stdout with go-spew")
	subcommands = append(subcommands, cmd)
}

func replayAndDump[K key[K]](ctx context.Context, out io.Writer, storeName string, codec keyCodec[K], script replayScript) (mapDump, error) {
	m, err := newMap[K](storeName, script.Default)
	if err != nil {
		return mapDump{}, err
	}
	if err := replay(ctx, out, m, codec, script.Ops); err != nil {
		return mapDump{}, err
	}
	return dumpMap(m), nil
}

func replay[K key[K]](ctx context.Context, out io.Writer, m *containers.IntervalMap[K, string], codec keyCodec[K], ops []replayOp) error {
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		ctx := dlog.WithField(ctx, "intervalmap.replay.op", i)
		switch op.Op {
		case "assign":
			beg, err := codec.Parse(op.Beg)
			if err != nil {
				return fmt.Errorf("op %d: beg: %w", i, err)
			}
			end, err := codec.Parse(op.End)
			if err != nil {
				return fmt.Errorf("op %d: end: %w", i, err)
			}
			if beg.Compare(end) >= 0 {
				dlog.Debugf(ctx, "assign [%v, %v) is empty; ignoring", beg, end)
			} else {
				dlog.Debugf(ctx, "assign [%v, %v) = %q", beg, end, op.Val)
			}
			m.Assign(beg, end, op.Val)
		case "lookup":
			key, err := codec.Parse(op.Key)
			if err != nil {
				return fmt.Errorf("op %d: key: %w", i, err)
			}
			textui.Fprintf(out, "%v => %v\n", key, m.Lookup(key))
		case "print":
			textui.Fprintf(out, "%v\n", m)
		default:
			return fmt.Errorf("op %d: unknown op %q", i, op.Op)
		}
	}
	dlog.Debugf(ctx, "final map has %d boundaries", m.Len())
	return nil
}

func dumpMap[K key[K]](m *containers.IntervalMap[K, string]) mapDump {
	ret := mapDump{
		Default:    m.Default(),
		Boundaries: m.Len(),
	}
	for run := range m.Runs() {
		dumpRun := mapDumpRun{Val: run.Val}
		if run.Beg.OK {
			dumpRun.Beg = containers.OptionalValue(fmt.Sprint(run.Beg.Val))
		}
		if run.End.OK {
			dumpRun.End = containers.OptionalValue(fmt.Sprint(run.End.Val))
		}
		ret.Runs = append(ret.Runs, dumpRun)
	}
	return ret
}
