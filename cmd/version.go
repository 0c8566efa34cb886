// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-policy-agent/tiny/cmd/formats"
	pr "github.com/open-policy-agent/tiny/internal/presentation"
	"github.com/open-policy-agent/tiny/util"
	"github.com/open-policy-agent/tiny/version"
)

func init() {

	format := formats.Flag(formats.Pretty, formats.JSON)

	var versionCommand = &cobra.Command{
		Use:   "version",
		Short: "Print the version of tiny",
		Long:  "Show version and build information for tiny.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return generateCmdOutput(os.Stdout, format)
		},
	}

	addOutputFormat(versionCommand.Flags(), format)
	RootCommand.AddCommand(versionCommand)
}

type versionInfo struct {
	Version        string `json:"version"`
	BuildCommit    string `json:"build_commit"`
	BuildTimestamp string `json:"build_timestamp"`
	BuildHostname  string `json:"build_hostname"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
}

func generateCmdOutput(out io.Writer, format *util.EnumFlag) error {
	info := versionInfo{
		Version:        version.Version,
		BuildCommit:    version.Vcs,
		BuildTimestamp: version.Timestamp,
		BuildHostname:  version.Hostname,
		GoVersion:      version.GoVersion,
		Platform:       version.Platform,
	}

	if format.String() == formats.JSON {
		return pr.JSON(out, info)
	}

	fmt.Fprintln(out, "Version: "+info.Version)
	fmt.Fprintln(out, "Build Commit: "+info.BuildCommit)
	fmt.Fprintln(out, "Build Timestamp: "+info.BuildTimestamp)
	fmt.Fprintln(out, "Build Hostname: "+info.BuildHostname)
	fmt.Fprintln(out, "Go Version: "+info.GoVersion)
	fmt.Fprintln(out, "Platform: "+info.Platform)
	return nil
}
