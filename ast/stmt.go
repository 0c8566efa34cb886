// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

// Assign binds the value of an expression to a variable name.
type Assign struct {
	Name     string    `json:"name"`
	Value    Expr      `json:"value"`
	Location *Location `json:"location,omitempty"`
}

// NewAssign returns a new Assign statement.
func NewAssign(name string, value Expr) *Assign {
	return &Assign{Name: name, Value: value}
}

func (a *Assign) Loc() *Location { return a.Location }

func (a *Assign) String() string {
	return a.Name + " = " + a.Value.String()
}

// Print writes the value of an expression to the program output.
type Print struct {
	Expr     Expr      `json:"expr"`
	Location *Location `json:"location,omitempty"`
}

// NewPrint returns a new Print statement.
func NewPrint(expr Expr) *Print {
	return &Print{Expr: expr}
}

func (p *Print) Loc() *Location { return p.Location }

func (p *Print) String() string {
	return "print " + p.Expr.String()
}

func (*Assign) node() {}
func (*Print) node()  {}

func (*Assign) stmt() {}
func (*Print) stmt()  {}
