// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package tokens defines the kinds of tokens produced by the scanner.
package tokens

// Token represents a single token kind in the tiny language.
type Token uint8

// All tokens must be defined here
const (
	Illegal Token = iota
	EOF
	Newline
	Number
	Ident
	Equals
	Plus
	Print
)

var strings = [...]string{
	Illegal: "illegal",
	EOF:     "eof",
	Newline: "newline",
	Number:  "number",
	Ident:   "identifier",
	Equals:  "=",
	Plus:    "+",
	Print:   "print",
}

func (t Token) String() string {
	if int(t) >= len(strings) {
		return "unknown"
	}
	return strings[t]
}
