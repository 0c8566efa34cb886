// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown_test

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/storage/inmem"
	"github.com/open-policy-agent/tiny/topdown"
)

func ExampleEvaluator_Eval() {
	// Initialize context for the example. Normally the caller would obtain the
	// context from an input parameter or instantiate their own.
	ctx := context.Background()

	store := inmem.New()
	eval := topdown.New(store).WithPrintHook(topdown.NewPrintHook(os.Stdout))

	for _, stmt := range ast.MustParseStatements("x = 40\ny = x + 2\nprint y\n") {
		if _, err := eval.Eval(ctx, stmt); err != nil {
			fmt.Println("error:", err)
			return
		}
	}

	v, _ := store.Read(ctx, "x")
	fmt.Println("x:", v)

	// Output:
	//
	// 42
	// x: 40
}
