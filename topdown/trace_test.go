// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/storage/inmem"
)

func TestPrettyTrace(t *testing.T) {

	store := inmem.NewFromObject(map[string]int64{"a": 1})
	tracer := NewBufferTracer()

	_, err := New(store).
		WithPrintHook(NewPrintHook(io.Discard)).
		WithTracer(tracer).
		Eval(context.Background(), ast.MustParseStatement("x = a + 2"))
	if err != nil {
		t.Fatal(err)
	}

	expected := `Enter x = a + 2
| Enter a + 2
| | Enter a
| | Exit a = 1
| | Enter 2
| | Exit 2 = 2
| Exit a + 2 = 3
Exit x = a + 2 = 3
`

	var buf bytes.Buffer
	PrettyTrace(&buf, *tracer)

	if buf.String() != expected {
		t.Fatalf("Expected:\n\n%v\n\nGot:\n\n%v", expected, buf.String())
	}
}

func TestTraceFail(t *testing.T) {
	tracer := NewBufferTracer()

	_, err := New(inmem.New()).WithTracer(tracer).Eval(context.Background(), ast.MustParseStatement("print 1 + b"))
	if err == nil {
		t.Fatal("Expected error")
	}

	var ops []Op
	for _, evt := range *tracer {
		ops = append(ops, evt.Op)
	}

	exp := []Op{EnterOp, EnterOp, EnterOp, ExitOp, EnterOp, FailOp, FailOp, FailOp}
	if len(ops) != len(exp) {
		t.Fatalf("Expected %v but got %v", exp, ops)
	}
	for i := range exp {
		if ops[i] != exp[i] {
			t.Fatalf("Expected %v but got %v", exp, ops)
		}
	}
}

func TestDisabledTracerIgnored(t *testing.T) {
	var tracer *BufferTracer
	e := New(inmem.New()).WithTracer(tracer)
	if len(e.tracers) != 0 {
		t.Fatal("Expected nil tracer to be ignored")
	}
}
