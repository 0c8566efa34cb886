// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/metrics"
	"github.com/open-policy-agent/tiny/storage"
	"github.com/open-policy-agent/tiny/topdown/print"
)

// Evaluator walks statement trees against a variable store. Assignments
// write to the store and print statements are sent to the print hook.
type Evaluator struct {
	store     storage.Store
	printHook print.Hook
	tracers   []Tracer
	metrics   metrics.Metrics
}

// New returns an Evaluator bound to store. Printed values go to standard
// output unless another hook is configured.
func New(store storage.Store) *Evaluator {
	return &Evaluator{
		store:     store,
		printHook: NewPrintHook(os.Stdout),
		metrics:   metrics.NoOp(),
	}
}

// WithPrintHook sets the hook that receives printed values.
func (e *Evaluator) WithPrintHook(h print.Hook) *Evaluator {
	if h != nil {
		e.printHook = h
	}
	return e
}

// WithTracer adds a tracer to the evaluator. Disabled tracers are ignored.
func (e *Evaluator) WithTracer(t Tracer) *Evaluator {
	if t != nil && t.Enabled() {
		e.tracers = append(e.tracers, t)
	}
	return e
}

// WithMetrics sets the metrics collection to update during evaluation.
func (e *Evaluator) WithMetrics(m metrics.Metrics) *Evaluator {
	if m != nil {
		e.metrics = m
	}
	return e
}

// Eval evaluates node and returns its value. Number, Var and Add produce the
// value of the expression; Assign and Print produce the value of their
// expression after performing their side effect.
func (e *Evaluator) Eval(ctx context.Context, node ast.Node) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, cancelErr(err)
	}
	return e.eval(ctx, node, 0)
}

func (e *Evaluator) eval(ctx context.Context, node ast.Node, depth int) (int64, error) {

	e.trace(EnterOp, node, 0, depth)

	v, err := e.evalNode(ctx, node, depth)
	if err != nil {
		e.trace(FailOp, node, 0, depth)
		return 0, err
	}

	e.trace(ExitOp, node, v, depth)
	return v, nil
}

func (e *Evaluator) evalNode(ctx context.Context, node ast.Node, depth int) (int64, error) {
	switch x := node.(type) {
	case *ast.Number:
		return x.Value, nil

	case *ast.Var:
		v, err := e.store.Read(ctx, x.Name)
		if err != nil {
			if storage.IsNotFound(err) {
				return 0, undefinedVarErr(x)
			}
			return 0, internalErr(x.Location, err)
		}
		return v, nil

	case *ast.Add:
		l, err := e.eval(ctx, x.Left, depth+1)
		if err != nil {
			return 0, err
		}
		r, err := e.eval(ctx, x.Right, depth+1)
		if err != nil {
			return 0, err
		}
		return l + r, nil

	case *ast.Assign:
		v, err := e.eval(ctx, x.Value, depth+1)
		if err != nil {
			return 0, err
		}
		if err := e.store.Write(ctx, x.Name, v); err != nil {
			return 0, internalErr(x.Location, err)
		}
		e.metrics.Counter(metrics.Assignments).Incr()
		return v, nil

	case *ast.Print:
		v, err := e.eval(ctx, x.Expr, depth+1)
		if err != nil {
			return 0, err
		}
		pctx := print.Context{Context: ctx, Location: x.Location}
		if err := e.printHook.Print(pctx, strconv.FormatInt(v, 10)); err != nil {
			return 0, internalErr(x.Location, err)
		}
		e.metrics.Counter(metrics.Prints).Incr()
		return v, nil
	}

	return 0, internalErr(nil, fmt.Errorf("illegal node type %T", node))
}

func (e *Evaluator) trace(op Op, node ast.Node, v int64, depth int) {
	if len(e.tracers) == 0 {
		return
	}
	evt := &Event{Op: op, Node: node, Value: v, Depth: depth}
	for _, t := range e.tracers {
		t.Trace(evt)
	}
}
