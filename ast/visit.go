// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

// Visitor defines the interface for iterating AST elements.
// The Visit function can return a Visitor w which will be
// used to visit the children of the AST element v. If the
// Visit function returns nil, the children will not be visited.
type Visitor interface {
	Visit(v Node) (w Visitor)
}

// BeforeAndAfterVisitor wraps Visitor to provide hooks for being called
// before and after the AST has been visited.
type BeforeAndAfterVisitor interface {
	Visitor
	Before(x Node)
	After(x Node)
}

// Walk iterates the AST by calling the Visit function on the Visitor
// v for x before recursing.
func Walk(v Visitor, x Node) {
	if bav, ok := v.(BeforeAndAfterVisitor); ok {
		bav.Before(x)
		defer bav.After(x)
	}
	w := v.Visit(x)
	if w == nil {
		return
	}
	switch x := x.(type) {
	case *Add:
		Walk(w, x.Left)
		Walk(w, x.Right)
	case *Assign:
		Walk(w, x.Value)
	case *Print:
		Walk(w, x.Expr)
	}
}

// WalkVars calls the function f on all variable references under x. If the
// function f returns true, AST nodes under the last node will not be visited.
func WalkVars(x Node, f func(*Var) bool) {
	vis := NewGenericVisitor(func(x Node) bool {
		if v, ok := x.(*Var); ok {
			return f(v)
		}
		return false
	})
	Walk(vis, x)
}

// Vars returns the names of the variables referenced under x in the order
// they appear, without duplicates. The target of an Assign is not a
// reference.
func Vars(x Node) []string {
	seen := map[string]struct{}{}
	var names []string
	WalkVars(x, func(v *Var) bool {
		if _, ok := seen[v.Name]; !ok {
			seen[v.Name] = struct{}{}
			names = append(names, v.Name)
		}
		return false
	})
	return names
}

// GenericVisitor implements the Visitor interface to provide
// a utility to walk over AST nodes using a closure. If the closure
// returns true, the visitor will not walk over AST nodes under x.
type GenericVisitor struct {
	f func(x Node) bool
}

// NewGenericVisitor returns a new GenericVisitor that will invoke the function
// f on AST nodes.
func NewGenericVisitor(f func(x Node) bool) *GenericVisitor {
	return &GenericVisitor{f}
}

// Visit calls the function f on the GenericVisitor.
func (vis *GenericVisitor) Visit(x Node) Visitor {
	if vis.f(x) {
		return nil
	}
	return vis
}
