// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/cmd/formats"
	"github.com/open-policy-agent/tiny/cmd/internal/env"
	pr "github.com/open-policy-agent/tiny/internal/presentation"
	"github.com/open-policy-agent/tiny/loader"
	"github.com/open-policy-agent/tiny/util"
)

// stdinPath selects standard input as the source to parse.
const stdinPath = "-"

type parseParams struct {
	format   *util.EnumFlag
	maxBytes *int64
	stdin    io.Reader
}

var configuredParseParams = parseParams{
	format:   formats.Flag(formats.Pretty, formats.JSON, formats.YAML),
	maxBytes: &rootParams.maxBytes,
	stdin:    os.Stdin,
}

var parseCommand = &cobra.Command{
	Use:   "parse <path>",
	Short: "Parse tiny source file",
	Long: `Parse tiny source file and print AST.

If the path is '-' the source is read from standard input.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errNoSource
		}
		return env.CmdFlags.CheckEnvironmentVariables(cmd)
	},
	Run: func(_ *cobra.Command, args []string) {
		os.Exit(parse(args, &configuredParseParams, os.Stdout, os.Stderr))
	},
}

func parse(args []string, params *parseParams, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 0 {
		return 0
	}

	var maxBytes int64
	if params.maxBytes != nil {
		maxBytes = *params.maxBytes
	}

	var src *loader.SourceFile
	var err error
	if args[0] == stdinPath && params.stdin != nil {
		src, err = loader.Reader("<stdin>", params.stdin, maxBytes)
	} else {
		src, err = loader.File(args[0], maxBytes)
	}
	if err != nil {
		_ = pr.JSON(stderr, pr.Output{Errors: pr.NewOutputErrors(err)})
		return 1
	}

	stmts, err := ast.ParseStatements(src.Name, string(src.Raw))
	if err != nil {
		_ = pr.JSON(stderr, pr.Output{Errors: pr.NewOutputErrors(err)})
		return 1
	}

	if stmts == nil {
		stmts = []ast.Statement{}
	}

	switch params.format.String() {
	case formats.JSON:
		bs, err := json.MarshalIndent(stmts, "", "  ")
		if err != nil {
			_ = pr.JSON(stderr, pr.Output{Errors: pr.NewOutputErrors(err)})
			return 1
		}
		_, _ = fmt.Fprint(stdout, string(bs)+"\n")
	case formats.YAML:
		bs, err := yaml.Marshal(stmts)
		if err != nil {
			_ = pr.JSON(stderr, pr.Output{Errors: pr.NewOutputErrors(err)})
			return 1
		}
		_, _ = stdout.Write(bs)
	default:
		for _, stmt := range stmts {
			ast.Pretty(stdout, stmt)
		}
	}

	return 0
}

func init() {
	addOutputFormat(parseCommand.Flags(), configuredParseParams.format)
	RootCommand.AddCommand(parseCommand)
}
