// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"encoding/json"
)

// Node type names used in the JSON representation of the AST.
const (
	NumberTypeName = "number"
	VarTypeName    = "var"
	AddTypeName    = "add"
	AssignTypeName = "assign"
	PrintTypeName  = "print"
)

// TypeName returns a human readable name for the AST element type.
func TypeName(x Node) string {
	switch x.(type) {
	case *Number:
		return NumberTypeName
	case *Var:
		return VarTypeName
	case *Add:
		return AddTypeName
	case *Assign:
		return AssignTypeName
	case *Print:
		return PrintTypeName
	}
	return ""
}

func (n *Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Value    int64     `json:"value"`
		Location *Location `json:"location,omitempty"`
	}{NumberTypeName, n.Value, n.Location})
}

func (v *Var) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Name     string    `json:"name"`
		Location *Location `json:"location,omitempty"`
	}{VarTypeName, v.Name, v.Location})
}

func (a *Add) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Left     Expr      `json:"left"`
		Right    Expr      `json:"right"`
		Location *Location `json:"location,omitempty"`
	}{AddTypeName, a.Left, a.Right, a.Location})
}

func (a *Assign) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Name     string    `json:"name"`
		Value    Expr      `json:"value"`
		Location *Location `json:"location,omitempty"`
	}{AssignTypeName, a.Name, a.Value, a.Location})
}

func (p *Print) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Expr     Expr      `json:"expr"`
		Location *Location `json:"location,omitempty"`
	}{PrintTypeName, p.Expr, p.Location})
}
