// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// This file contains extra functions for parsing tiny source. The
// interpreter itself drives the Parser one statement at a time; these
// helpers parse whole inputs for tooling (the parse command, the REPL and
// tests).

package ast

import (
	"fmt"
)

// MustParseStatements returns a slice of parsed statements.
// If an error occurs during parsing, panic.
func MustParseStatements(input string) []Statement {
	parsed, err := ParseStatements("", input)
	if err != nil {
		panic(err)
	}
	return parsed
}

// MustParseStatement returns exactly one statement.
// If an error occurs during parsing, panic.
func MustParseStatement(input string) Statement {
	parsed, err := ParseStatement(input)
	if err != nil {
		panic(err)
	}
	return parsed
}

// ParseStatement returns exactly one statement. If input contains zero or
// more than one statement an error is returned.
func ParseStatement(input string) (Statement, error) {
	stmts, err := ParseStatements("", input)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected exactly one statement but got %d", len(stmts))
	}
	return stmts[0], nil
}

// ParseStatements tokenizes and parses every statement in input. Blank lines
// are skipped. The first error aborts parsing.
func ParseStatements(filename string, input string) ([]Statement, error) {

	toks, err := Tokenize(filename, []byte(input))
	if err != nil {
		return nil, err
	}

	p := NewParser(toks)
	var stmts []Statement

	for !p.AtEOF() {
		if p.Current().Type == NewlineToken {
			p.Advance()
			continue
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	return stmts, nil
}
