// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package cmd implements the tiny command line interface.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/open-policy-agent/tiny/cmd/formats"
	"github.com/open-policy-agent/tiny/cmd/internal/env"
	"github.com/open-policy-agent/tiny/loader"
)

var errNoSource = errors.New("no source file specified")

var rootParams = newRunParams()

// RootCommand is the base CLI command that all subcommands are added to.
// Invoked with a file argument it runs the program in that file.
var RootCommand = &cobra.Command{
	Use:   "tiny <path>",
	Short: "Run tiny programs",
	Long: `Run a tiny program.

A tiny program is a sequence of newline separated statements. Each statement
either binds a variable or prints the value of an expression:

	x = 2 + 3
	y = x + 10
	print y

Statements run in order as they are parsed. The first error stops the program
and the command exits with status 1.

A path that matches a subcommand name runs the subcommand instead. Give such
a file with a directory prefix, for example 'tiny ./parse'.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errNoSource
		}
		return env.CmdFlags.CheckEnvironmentVariables(cmd)
	},
	Run: func(_ *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		code := run(ctx, args, rootParams, os.Stdout, os.Stderr)
		stop()
		os.Exit(code)
	},
}

type runParams struct {
	logging    loggingParams
	configFile string
	maxBytes   int64
	format     formatFlag
	metrics    bool
	explain    bool
	watch      bool
}

func newRunParams() *runParams {
	return &runParams{
		logging:  newLoggingParams(),
		maxBytes: loader.DefaultMaxBytes,
		format:   formats.Flag(formats.Pretty, formats.JSON),
	}
}

func init() {
	addLoggingFlags(RootCommand.PersistentFlags(), &rootParams.logging)
	addConfigFileFlag(RootCommand.PersistentFlags(), &rootParams.configFile)
	addMaxBytesFlag(RootCommand.PersistentFlags(), &rootParams.maxBytes)
	addOutputFormat(RootCommand.Flags(), rootParams.format)
	addMetricsFlag(RootCommand.Flags(), &rootParams.metrics)
	addExplainFlag(RootCommand.Flags(), &rootParams.explain)
	addWatchFlag(RootCommand.Flags(), &rootParams.watch)
}
