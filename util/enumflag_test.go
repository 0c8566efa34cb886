// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestEnumFlag(t *testing.T) {

	flag := NewEnumFlag("pretty", []string{"pretty", "json", "yaml"})

	if flag.String() != "pretty" || flag.IsSet() {
		t.Fatalf("Expected default value to be pretty but got: %v", flag.String())
	}

	if err := flag.Set("json"); err != nil {
		t.Fatalf("Unexpected error on set: %v", err)
	}

	if flag.String() != "json" || !flag.IsSet() {
		t.Fatalf("Expected value to be json but got: %v", flag.String())
	}

	if flag.Type() != "{pretty,json,yaml}" {
		t.Fatalf("Unexpected flag type: %v", flag.Type())
	}

	err := flag.Set("xml")
	if err == nil || err.Error() != "must be one of {pretty,json,yaml}" {
		t.Fatalf("Expected error from set but got: %v", err)
	}
}

func TestEnumFlagWithFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	format := NewEnumFlag("text", []string{"text", "json"})
	fs.VarP(format, "log-format", "", "set log format")

	if err := fs.Parse([]string{"--log-format=json"}); err != nil {
		t.Fatal(err)
	}
	if format.String() != "json" {
		t.Fatalf("Expected json but got %v", format.String())
	}

	if err := fs.Parse([]string{"--log-format=xml"}); err == nil {
		t.Fatal("Expected parse error")
	}
}
