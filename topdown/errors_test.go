// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"errors"
	"fmt"
	"testing"

	"github.com/open-policy-agent/tiny/ast"
)

func TestErrorWithLocation(t *testing.T) {
	err := &Error{
		Code:     UndefinedVarErr,
		Message:  "undefined variable: x",
		Location: ast.NewLocation(nil, "prog.tiny", 3, 7),
	}

	exp := "prog.tiny:3:7: eval_undefined_error: undefined variable: x"
	if err.Error() != exp {
		t.Fatalf("Expected %q but got %q", exp, err.Error())
	}
}

func TestIsError(t *testing.T) {
	err := undefinedVarErr(ast.VarTerm("x"))
	if !IsError(err) || !IsError(fmt.Errorf("stmt 1: %w", err)) {
		t.Fatal("Expected eval error")
	}
	if IsError(errors.New("boom")) {
		t.Fatal("Did not expect eval error")
	}
	if IsCancel(err) {
		t.Fatal("Did not expect cancel error")
	}
}

func TestUndefinedVar(t *testing.T) {
	name, ok := UndefinedVar(fmt.Errorf("stmt 1: %w", undefinedVarErr(ast.VarTerm("total"))))
	if !ok || name != "total" {
		t.Fatalf("Expected undefined variable total but got %q (ok: %v)", name, ok)
	}
	if _, ok := UndefinedVar(internalErr(nil, errors.New("boom"))); ok {
		t.Fatal("Did not expect undefined variable")
	}
}
