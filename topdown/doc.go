// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package topdown provides statement evaluation support.
//
// The evaluator walks each statement tree depth first. Expressions are
// evaluated left to right: for an Add node the left operand is fully
// evaluated before the right operand. Variable references are resolved
// against a storage.Store and assignments write back to it. Print statements
// hand the decimal rendering of their value to a print.Hook.
//
// Evaluation stops at the first error. Errors carry the location of the
// node that failed so callers can report "file:row:col" positions.
//
// Tracers receive an Enter event before a node is evaluated and an Exit (or
// Fail) event afterwards, which makes it possible to explain how a value was
// produced.
package topdown
