// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/open-policy-agent/tiny/cmd/formats"
	"github.com/open-policy-agent/tiny/cmd/internal/env"
	"github.com/open-policy-agent/tiny/repl"
	"github.com/open-policy-agent/tiny/storage/inmem"
	"github.com/open-policy-agent/tiny/util"
	"github.com/open-policy-agent/tiny/version"
)

const defaultHistoryFile = ".tiny_history" // default filename for shell history

type replParams struct {
	historyPath string
	format      *util.EnumFlag
}

func init() {

	params := replParams{
		historyPath: defaultHistoryPath(),
		format:      formats.Flag(formats.Pretty, formats.JSON),
	}

	replCommand := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell",
		Long: `Start an interactive shell for tiny statements.

Every line is run as soon as it is entered. Variables persist for the whole
session. Type 'help' to list the shell commands.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CmdFlags.CheckEnvironmentVariables(cmd)
		},
		RunE: func(*cobra.Command, []string) error {
			logger, err := rootParams.logging.logger(os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			repl.New(inmem.New(), params.historyPath, os.Stdout, params.format.String(), banner()).
				WithLogger(logger).
				Loop(ctx)
			return nil
		},
	}

	replCommand.Flags().StringVarP(&params.historyPath, "history", "H", params.historyPath, "set path of history file")
	addOutputFormat(replCommand.Flags(), params.format)

	RootCommand.AddCommand(replCommand)
}

func banner() string {
	return fmt.Sprintf("tiny %v (%v)\n\nRun 'help' to see a list of commands, 'exit' to leave.", version.Version, version.Platform)
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultHistoryFile
	}
	return filepath.Join(home, defaultHistoryFile)
}
