// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/open-policy-agent/tiny/ast"
)

// Op defines the types of tracing events.
type Op string

const (
	// EnterOp is emitted when a node is about to be evaluated.
	EnterOp Op = "Enter"

	// ExitOp is emitted when a node has produced a value.
	ExitOp Op = "Exit"

	// FailOp is emitted when the evaluation of a node fails.
	FailOp Op = "Fail"
)

// Event contains state associated with a tracing event.
type Event struct {
	Op    Op       `json:"op"`              // Identifies type of event.
	Node  ast.Node `json:"node"`            // Contains AST node relevant to the event.
	Value int64    `json:"value,omitempty"` // Value produced by the node; only set for ExitOp.
	Depth int      `json:"depth"`           // Depth of the node below the statement being evaluated.
}

func (evt *Event) String() string {
	if evt.Op == ExitOp {
		return fmt.Sprintf("%v %v = %d", evt.Op, evt.Node, evt.Value)
	}
	return fmt.Sprintf("%v %v", evt.Op, evt.Node)
}

// Tracer defines the interface for tracing in the evaluator.
type Tracer interface {
	Enabled() bool
	Trace(*Event)
}

// BufferTracer implements the Tracer interface by simply buffering all
// events received.
type BufferTracer []*Event

// NewBufferTracer returns a new BufferTracer.
func NewBufferTracer() *BufferTracer {
	return &BufferTracer{}
}

// Enabled always returns true if the BufferTracer is instantiated.
func (b *BufferTracer) Enabled() bool {
	return b != nil
}

// Trace adds the event to the buffer.
func (b *BufferTracer) Trace(evt *Event) {
	*b = append(*b, evt)
}

// PrettyTrace pretty prints the trace to the writer.
func PrettyTrace(w io.Writer, trace []*Event) {
	for _, event := range trace {
		fmt.Fprintln(w, strings.Repeat("| ", event.Depth)+event.String())
	}
}
