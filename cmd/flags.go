// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/open-policy-agent/tiny/cmd/internal/env"
	internal_logging "github.com/open-policy-agent/tiny/internal/logging"
	"github.com/open-policy-agent/tiny/logging"
	"github.com/open-policy-agent/tiny/util"
)

type formatFlag = *util.EnumFlag

type loggingParams struct {
	level  *util.EnumFlag
	format *util.EnumFlag
}

func newLoggingParams() loggingParams {
	return loggingParams{
		level:  util.NewEnumFlag("error", []string{"debug", "info", "warn", "error"}),
		format: util.NewEnumFlag(internal_logging.FormatText, []string{internal_logging.FormatText, internal_logging.FormatJSON, internal_logging.FormatJSONPretty}),
	}
}

func (p loggingParams) logger(w io.Writer) (logging.Logger, error) {
	logger, err := internal_logging.NewLogger(p.level.String(), p.format.String(), w)
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func addLoggingFlags(fs *pflag.FlagSet, p *loggingParams) {
	fs.VarP(p.level, "log-level", "l", "set log level")
	fs.Var(p.format, "log-format", "set log format")
}

func addConfigFileFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVarP(file, env.ConfigFileFlag, "c", "", "set path of YAML file supplying defaults for unset flags")
}

func addMaxBytesFlag(fs *pflag.FlagSet, maxBytes *int64) {
	fs.Int64VarP(maxBytes, "max-bytes", "", *maxBytes, "set the largest source file accepted in bytes")
}

func addOutputFormat(fs *pflag.FlagSet, outputFormat *util.EnumFlag) {
	fs.VarP(outputFormat, "format", "f", "set output format")
}

func addMetricsFlag(fs *pflag.FlagSet, metrics *bool) {
	fs.BoolVarP(metrics, "metrics", "", false, "report timers and counters on the standard error stream")
}

func addExplainFlag(fs *pflag.FlagSet, explain *bool) {
	fs.BoolVarP(explain, "explain", "", false, "print an evaluation trace on the standard error stream")
}

func addWatchFlag(fs *pflag.FlagSet, watch *bool) {
	fs.BoolVarP(watch, "watch", "w", false, "re-run the program when the source file changes")
}
