// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Command intervalmap exercises an interval map from the command
// line: replaying scripted operations against it, and benchmarking
// its storage backends.
package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"git.lukeshu.com/go/intervalmap/lib/textui"
)

type globalFlags struct {
	logLevel textui.LogLevelFlag
	store    string
	keys     string
}

type subcommand struct {
	cobra.Command
	RunE func(*globalFlags, *cobra.Command, []string) error
}

var subcommands []subcommand

func main() {
	flags := globalFlags{
		logLevel: textui.LogLevelFlag{
			Level: dlog.LogLevelInfo,
		},
		store: storeRBTree,
		keys:  keysInt,
	}

	argparser := &cobra.Command{
		Use:   "intervalmap {[flags]|SUBCOMMAND}",
		Short: "Drive a compressed interval map",

		Args: cliutil.WrapPositionalArgs(cliutil.OnlySubcommands),
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
		SilenceUsage:  true, // our FlagErrorFunc will handle it

		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().Var(&flags.logLevel, "verbosity", "set the verbosity")
	argparser.PersistentFlags().StringVar(&flags.store, "store", flags.store,
		"store the map's boundaries in `backend` (one of "+quoteList(storeNames)+")")
	argparser.PersistentFlags().StringVar(&flags.keys, "keys", flags.keys,
		"use keys of `type` (one of "+quoteList(keyNames)+")")

	for _, child := range subcommands {
		cmd := child.Command
		runE := child.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := textui.NewLogger(os.Stderr, flags.logLevel.Level)
			ctx = dlog.WithLogger(ctx, logger)
			ctx = dlog.WithField(ctx, "intervalmap.store", flags.store)
			dlog.SetFallbackLogger(logger.WithField("intervalmap.THIS_IS_A_BUG", true))

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("main", func(ctx context.Context) error {
				cmd.SetContext(ctx)
				return runE(&flags, cmd, args)
			})
			return grp.Wait()
		}
		argparser.AddCommand(&cmd)
	}

	if err := argparser.ExecuteContext(context.Background()); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
