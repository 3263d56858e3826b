// Copyright (C) 2023-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/datawire/dlib/derror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type flagSet struct {
	shutdown []StopFunc
}

func (fs *flagSet) Stop() error {
	var errs derror.MultiError
	for _, fn := range fs.shutdown {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type flagValue struct {
	parent *flagSet
	start  startFunc
	curVal string
}

var _ pflag.Value = (*flagValue)(nil)

// String implements pflag.Value.
func (fv *flagValue) String() string { return fv.curVal }

// Set implements pflag.Value.
func (fv *flagValue) Set(filename string) error {
	if filename == "" {
		return nil
	}
	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	shutdown, err := fv.start(w)
	if err != nil {
		return err
	}
	fv.curVal = filename
	fv.parent.shutdown = append(fv.parent.shutdown, func() error {
		err1 := shutdown()
		err2 := w.Close()
		if err1 != nil {
			return err1
		}
		return err2
	})
	return nil
}

// Type implements pflag.Value.
func (*flagValue) Type() string { return "filename" }

func pStart(name string) startFunc {
	return func(w io.Writer) (StopFunc, error) {
		return Profile(w, name)
	}
}

// AddProfileFlags adds flags to a pflag.FlagSet to write any (or all)
// of the standard profiles to a file, and returns a "stop" function
// to be called at program shutdown.
func AddProfileFlags(flags *pflag.FlagSet, prefix string) StopFunc {
	var root flagSet

	flags.Var(&flagValue{parent: &root, start: CPU}, prefix+"cpu", "Write a CPU profile to the file `cpu.pprof`")
	_ = cobra.MarkFlagFilename(flags, prefix+"cpu")

	flags.Var(&flagValue{parent: &root, start: Trace}, prefix+"trace", "Write a trace (https://pkg.go.dev/runtime/trace) to the file `trace.out`")
	_ = cobra.MarkFlagFilename(flags, prefix+"trace")

	for _, name := range []string{
		ProfileGoroutine,
		ProfileThreadCreate,
		ProfileHeap,
		ProfileAllocs,
		ProfileBlock,
		ProfileMutex,
	} {
		article := "a"
		if name == ProfileAllocs {
			article = "an"
		}
		flags.Var(&flagValue{parent: &root, start: pStart(name)}, prefix+name,
			fmt.Sprintf("Write %s %s profile to the file `%s.pprof`", article, name, name))
		_ = cobra.MarkFlagFilename(flags, prefix+name)
	}

	return root.Stop
}
