// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"io"
	"strings"
)

// Pretty writes a pretty representation of the AST rooted at x to w.
//
// This function is intended for debug purposes when inspecting ASTs.
func Pretty(w io.Writer, x Node) {
	pp := &prettyPrinter{
		depth: -1,
		w:     w,
	}
	Walk(pp, x)
}

type prettyPrinter struct {
	depth int
	w     io.Writer
}

func (pp *prettyPrinter) Before(Node) {
	pp.depth++
}

func (pp *prettyPrinter) After(Node) {
	pp.depth--
}

func (pp *prettyPrinter) Visit(x Node) Visitor {
	switch x := x.(type) {
	case *Number:
		pp.writeIndent("number %d", x.Value)
	case *Var:
		pp.writeIndent("var %s", x.Name)
	case *Add:
		pp.writeIndent("add")
	case *Assign:
		pp.writeIndent("assign %s", x.Name)
	case *Print:
		pp.writeIndent("print")
	}
	return pp
}

func (pp *prettyPrinter) writeIndent(f string, a ...any) {
	pad := strings.Repeat(" ", pp.depth)
	pp.write(pad+f, a...)
}

func (pp *prettyPrinter) write(f string, a ...any) {
	fmt.Fprintf(pp.w, f+"\n", a...)
}
