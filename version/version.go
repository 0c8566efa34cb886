// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package version contains version information that is set at build time.
package version

import (
	"runtime"
	"runtime/debug"
)

// Version is the canonical version of tiny.
var Version = "0.1.0-dev"

// GoVersion is the version of Go this was built with
var GoVersion = runtime.Version()

// Platform is the runtime OS and architecture of this tiny binary
var Platform = runtime.GOOS + "/" + runtime.GOARCH

// Additional version information that is displayed by the "version" command.
// Values set with -ldflags take precedence over the VCS stamp of the build.
var (
	Vcs       = ""
	Timestamp = ""
	Hostname  = ""
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	var dirty bool
	var vcs string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.time":
			if Timestamp == "" {
				Timestamp = s.Value
			}
		case "vcs.revision":
			vcs = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if Vcs == "" && vcs != "" {
		Vcs = vcs
		if dirty {
			Vcs += "-dirty"
		}
	}
}
