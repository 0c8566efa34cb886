// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestPlatform(t *testing.T) {
	if !strings.HasPrefix(Platform, runtime.GOOS+"/") {
		t.Fatalf("Unexpected platform %v", Platform)
	}
	if GoVersion == "" || Version == "" {
		t.Fatal("Expected version information")
	}
}
