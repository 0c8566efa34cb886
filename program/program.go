// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package program runs tiny source against a variable store.
//
// A Program tokenizes its source once and then alternates between parsing
// and evaluating one statement at a time, so a statement is evaluated before
// the next one is parsed:
//
//	p := program.New(
//		program.Source("prog.tiny", src),
//		program.Output(os.Stdout),
//	)
//	err := p.Run(ctx)
package program

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/open-policy-agent/tiny/ast"
	"github.com/open-policy-agent/tiny/logging"
	"github.com/open-policy-agent/tiny/metrics"
	"github.com/open-policy-agent/tiny/storage"
	"github.com/open-policy-agent/tiny/storage/inmem"
	"github.com/open-policy-agent/tiny/topdown"
	"github.com/open-policy-agent/tiny/topdown/print"
)

// State is the phase of a Program run.
type State int

const (
	// Scanning is the initial state. The source has not been tokenized.
	Scanning State = iota

	// Running means statements are being parsed and evaluated.
	Running

	// Done is terminal. The run finished or failed.
	Done
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return "unknown"
}

// ErrAlreadyRun is returned when Run is called on a Program that has already
// run.
var ErrAlreadyRun = errors.New("program has already run")

// Program contains the state of a single run of tiny source.
type Program struct {
	file      string
	row       int
	src       []byte
	store     storage.Store
	output    io.Writer
	printHook print.Hook
	tracers   []topdown.Tracer
	metrics   metrics.Metrics
	logger    logging.Logger
	state     State
}

// Source returns an argument that sets the source to run. The file name is
// used for error locations.
func Source(file string, src []byte) func(*Program) {
	return func(p *Program) {
		p.file = file
		p.src = src
	}
}

// Row returns an argument that sets the line number of the first line of the
// source. It defaults to 1.
func Row(row int) func(*Program) {
	return func(p *Program) {
		p.row = row
	}
}

// Store returns an argument that sets the variable store. Bindings already
// in the store are visible to the program.
func Store(s storage.Store) func(*Program) {
	return func(p *Program) {
		p.store = s
	}
}

// Output returns an argument that sets the writer printed values go to. It
// is ignored when a print hook is set.
func Output(w io.Writer) func(*Program) {
	return func(p *Program) {
		p.output = w
	}
}

// PrintHook returns an argument that sets the hook receiving printed values.
func PrintHook(h print.Hook) func(*Program) {
	return func(p *Program) {
		p.printHook = h
	}
}

// Tracer returns an argument that adds an evaluation tracer.
func Tracer(t topdown.Tracer) func(*Program) {
	return func(p *Program) {
		if t != nil {
			p.tracers = append(p.tracers, t)
		}
	}
}

// Metrics returns an argument that sets the metrics collection.
func Metrics(m metrics.Metrics) func(*Program) {
	return func(p *Program) {
		p.metrics = m
	}
}

// Logger returns an argument that sets the logger.
func Logger(l logging.Logger) func(*Program) {
	return func(p *Program) {
		p.logger = l
	}
}

// New returns a new Program object.
func New(options ...func(*Program)) *Program {

	p := &Program{}

	for _, option := range options {
		option(p)
	}

	if p.store == nil {
		p.store = inmem.New()
	}

	if p.output == nil {
		p.output = os.Stdout
	}

	if p.printHook == nil {
		p.printHook = topdown.NewPrintHook(p.output)
	}

	if p.metrics == nil {
		p.metrics = metrics.NoOp()
	}

	if p.logger == nil {
		p.logger = logging.NewNoOpLogger()
	}

	return p
}

// State returns the current phase of the program.
func (p *Program) State() State {
	return p.state
}

// Bindings returns the variable store the program runs against.
func (p *Program) Bindings() storage.Store {
	return p.store
}

// Run tokenizes the source and evaluates its statements in order. The first
// error aborts the run and is returned. Cancelling ctx stops the run before
// the next statement is evaluated. A Program can only be run once.
func (p *Program) Run(ctx context.Context) error {

	if p.state != Scanning {
		return ErrAlreadyRun
	}

	logger := p.logger.WithFields(map[string]any{
		"run_id": uuid.NewString(),
		"file":   p.file,
	})

	err := p.run(ctx, logger)
	p.state = Done

	if err != nil {
		logger.Debug("Program failed: %v", err)
		return err
	}

	logger.Debug("Program finished.")
	return nil
}

func (p *Program) run(ctx context.Context, logger logging.Logger) error {

	p.metrics.Timer(metrics.ScanSource).Start()
	toks, err := ast.TokenizeAt(p.file, p.row, p.src)
	p.metrics.Timer(metrics.ScanSource).Stop()
	if err != nil {
		return err
	}

	logger.Debug("Scanned %d tokens.", len(toks))

	parser := ast.NewParser(toks)
	eval := topdown.New(p.store).
		WithPrintHook(p.printHook).
		WithMetrics(p.metrics)

	for _, t := range p.tracers {
		eval = eval.WithTracer(t)
	}

	p.state = Running

	for p.state == Running {
		switch parser.Current().Type {
		case ast.EOFToken:
			p.state = Done
		case ast.NewlineToken:
			parser.Advance()
		default:
			if err := p.step(ctx, parser, eval, logger); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Program) step(ctx context.Context, parser *ast.Parser, eval *topdown.Evaluator, logger logging.Logger) error {

	p.metrics.Timer(metrics.ParseStmt).Start()
	stmt, err := parser.ParseStatement()
	p.metrics.Timer(metrics.ParseStmt).Stop()
	if err != nil {
		return err
	}

	logger.Debug("Evaluating %v at %v.", stmt, stmt.Loc())

	p.metrics.Timer(metrics.EvalStmt).Start()
	_, err = eval.Eval(ctx, stmt)
	p.metrics.Histogram(metrics.EvalStmtNanos).Update(p.metrics.Timer(metrics.EvalStmt).Stop())
	if err != nil {
		return err
	}

	p.metrics.Counter(metrics.Statements).Incr()
	return nil
}
