// Copyright 2021 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package print defines the hook invoked for print statements.
package print

import (
	"context"

	"github.com/open-policy-agent/tiny/ast"
)

// Context provides the Hook implementation context about the print statement.
type Context struct {
	Context  context.Context
	Location *ast.Location
}

// Hook defines the interface that callers can implement to receive print
// statement outputs. If the hook returns an error, evaluation stops and the
// error is returned to the caller.
type Hook interface {
	Print(Context, string) error
}
