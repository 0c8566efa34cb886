// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/metrics"
	"github.com/open-policy-agent/tiny/storage/inmem"
	"github.com/open-policy-agent/tiny/topdown/print"
)

func TestEvalExpressions(t *testing.T) {

	store := inmem.NewFromObject(map[string]int64{"a": 2, "b": 40, "max": math.MaxInt64})

	tests := []struct {
		note string
		node ast.Node
		exp  int64
	}{
		{"number", ast.NumberTerm(7), 7},
		{"var", ast.VarTerm("a"), 2},
		{"add", ast.AddTerm(ast.VarTerm("a"), ast.VarTerm("b")), 42},
		{"nested add", ast.AddTerm(ast.AddTerm(ast.NumberTerm(1), ast.VarTerm("a")), ast.NumberTerm(3)), 6},
		{"wraparound", ast.AddTerm(ast.VarTerm("max"), ast.NumberTerm(1)), math.MinInt64},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			result, err := New(store).Eval(context.Background(), tc.node)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result != tc.exp {
				t.Fatalf("Expected %d but got %d", tc.exp, result)
			}
		})
	}
}

func TestEvalStatements(t *testing.T) {

	tests := []struct {
		note    string
		program string
		exp     string
		vars    map[string]int64
	}{
		{
			note:    "assign and print",
			program: "x = 5\nprint x\n",
			exp:     "5\n",
			vars:    map[string]int64{"x": 5},
		},
		{
			note:    "chained assignments",
			program: "x = 2 + 3\ny = x + 10\nprint y\n",
			exp:     "15\n",
			vars:    map[string]int64{"x": 5, "y": 15},
		},
		{
			note:    "reassignment",
			program: "x = 1\nx = x + 1\nprint x\n",
			exp:     "2\n",
			vars:    map[string]int64{"x": 2},
		},
		{
			note:    "print returns without binding",
			program: "print 1 + 2 + 3\nprint 0",
			exp:     "6\n0\n",
			vars:    map[string]int64{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			var buf bytes.Buffer
			store := inmem.New()
			e := New(store).WithPrintHook(NewPrintHook(&buf))
			ctx := context.Background()

			for _, stmt := range ast.MustParseStatements(tc.program) {
				if _, err := e.Eval(ctx, stmt); err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
			}

			if buf.String() != tc.exp {
				t.Fatalf("Expected output %q but got %q", tc.exp, buf.String())
			}

			if store.Len() != len(tc.vars) {
				t.Fatalf("Expected %d bindings but got %d", len(tc.vars), store.Len())
			}
			for k, v := range tc.vars {
				if got, err := store.Read(ctx, k); err != nil || got != v {
					t.Fatalf("Expected %v=%v but got %v (err: %v)", k, v, got, err)
				}
			}
		})
	}
}

func TestEvalStatementResult(t *testing.T) {
	var buf bytes.Buffer
	e := New(inmem.New()).WithPrintHook(NewPrintHook(&buf))
	ctx := context.Background()

	v, err := e.Eval(ctx, ast.MustParseStatement("x = 20 + 22"))
	if err != nil || v != 42 {
		t.Fatalf("Expected assignment to return 42 but got %v (err: %v)", v, err)
	}

	v, err = e.Eval(ctx, ast.MustParseStatement("print x + 1"))
	if err != nil || v != 43 {
		t.Fatalf("Expected print to return 43 but got %v (err: %v)", v, err)
	}
}

func TestEvalUndefinedVariable(t *testing.T) {
	var buf bytes.Buffer
	store := inmem.New()
	e := New(store).WithPrintHook(NewPrintHook(&buf))
	ctx := context.Background()

	stmts, err := ast.ParseStatements("test.tiny", "print z\n")
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Eval(ctx, stmts[0])

	var evalErr *Error
	if !errors.As(err, &evalErr) {
		t.Fatalf("Expected eval error but got %v", err)
	}
	if evalErr.Code != UndefinedVarErr || evalErr.Message != "undefined variable: z" {
		t.Fatalf("Unexpected error: %v", evalErr)
	}
	if evalErr.Error() != "test.tiny:1:7: eval_undefined_error: undefined variable: z" {
		t.Fatalf("Unexpected error message: %v", evalErr)
	}
	if buf.Len() != 0 {
		t.Fatalf("Expected no output but got %q", buf.String())
	}

	// A failed assignment does not bind its target.
	if _, err := e.Eval(ctx, ast.MustParseStatement("y = z + 1")); !IsError(err) {
		t.Fatalf("Expected eval error but got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("Expected empty store but got %d bindings", store.Len())
	}

	if _, err := e.Eval(ctx, ast.MustParseStatement("z = 3")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(ctx, ast.MustParseStatement("print z")); err != nil {
		t.Fatalf("Expected reference after assignment to succeed but got %v", err)
	}
	if buf.String() != "3\n" {
		t.Fatalf("Unexpected output %q", buf.String())
	}
}

type failingHook struct{}

func (failingHook) Print(print.Context, string) error {
	return errors.New("closed pipe")
}

func TestEvalPrintHookError(t *testing.T) {
	_, err := New(inmem.New()).WithPrintHook(failingHook{}).Eval(context.Background(), ast.MustParseStatement("print 1"))

	var evalErr *Error
	if !errors.As(err, &evalErr) || evalErr.Code != InternalErr {
		t.Fatalf("Expected internal error but got %v", err)
	}
}

func TestEvalCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(inmem.New()).Eval(ctx, ast.MustParseStatement("x = 1"))
	if !IsCancel(err) {
		t.Fatalf("Expected cancel error but got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected error to wrap context.Canceled but got %v", err)
	}
}

func TestEvalMetrics(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	e := New(inmem.New()).WithPrintHook(NewPrintHook(&buf)).WithMetrics(m)

	for _, stmt := range ast.MustParseStatements("x = 1\ny = 2\nprint x + y") {
		if _, err := e.Eval(context.Background(), stmt); err != nil {
			t.Fatal(err)
		}
	}

	all := m.All()
	if all["counter_tiny_assignments"] != uint64(2) || all["counter_tiny_prints"] != uint64(1) {
		t.Fatalf("Unexpected metrics: %v", all)
	}
}
