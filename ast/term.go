// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"strconv"
)

// Node declares the common interface for all AST elements. Every kind of
// node in the language is represented as a type that implements this
// interface:
//
// - Number, Var
// - Add
// - Assign, Print
//
// Nodes form a tree: each parent exclusively owns its children.
type Node interface {
	// Loc returns the location of the node in the source.
	Loc() *Location

	// String returns a human readable string representation of the node.
	String() string

	node()
}

// Expr is a Node that produces a value: Number, Var or Add.
type Expr interface {
	Node
	expr()
}

// Statement is a Node that can appear at the top level of a program: Assign
// or Print.
type Statement interface {
	Node
	stmt()
}

// Number represents an integer literal.
type Number struct {
	Value    int64     `json:"value"`
	Location *Location `json:"location,omitempty"`
}

// NumberTerm creates a new Number node.
func NumberTerm(v int64) *Number {
	return &Number{Value: v}
}

func (n *Number) Loc() *Location { return n.Location }

func (n *Number) String() string {
	return strconv.FormatInt(n.Value, 10)
}

// Var represents a reference to a variable.
type Var struct {
	Name     string    `json:"name"`
	Location *Location `json:"location,omitempty"`
}

// VarTerm creates a new Var node.
func VarTerm(name string) *Var {
	return &Var{Name: name}
}

func (v *Var) Loc() *Location { return v.Location }

func (v *Var) String() string {
	return v.Name
}

// Add represents the sum of two expressions.
type Add struct {
	Left     Expr      `json:"left"`
	Right    Expr      `json:"right"`
	Location *Location `json:"location,omitempty"`
}

// AddTerm creates a new Add node.
func AddTerm(left, right Expr) *Add {
	return &Add{Left: left, Right: right}
}

func (a *Add) Loc() *Location { return a.Location }

// String renders left-nested sums flat. A right operand that is itself a sum
// is parenthesized.
func (a *Add) String() string {
	if _, ok := a.Right.(*Add); ok {
		return a.Left.String() + " + (" + a.Right.String() + ")"
	}
	return a.Left.String() + " + " + a.Right.String()
}

func (*Number) node() {}
func (*Var) node()    {}
func (*Add) node()    {}

func (*Number) expr() {}
func (*Var) expr()    {}
func (*Add) expr()    {}
