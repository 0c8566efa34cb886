// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"errors"
	"fmt"
	"strings"
)

// Errors represents a series of errors encountered during scanning or parsing.
type Errors []*Error

func (e Errors) Error() string {

	if len(e) == 0 {
		return "no error(s)"
	}

	if len(e) == 1 {
		return fmt.Sprintf("1 error occurred: %v", e[0].Error())
	}

	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}

	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(s, "\n"))
}

const (
	// LexErr indicates the scanner found a character that does not belong
	// to the language.
	LexErr = "tiny_lex_error"

	// ParseErr indicates an unexpected token was found while parsing a
	// statement.
	ParseErr = "tiny_parse_error"
)

// IsError returns true if err is an AST error with code. Errors wrapped with
// fmt.Errorf and Errors slices are inspected.
func IsError(code string, err error) bool {
	var errs Errors
	if errors.As(err, &errs) {
		for _, e := range errs {
			if e.Code == code {
				return true
			}
		}
		return false
	}
	var astErr *Error
	if errors.As(err, &astErr) {
		return astErr.Code == code
	}
	return false
}

// Error represents a single error caught during scanning or parsing.
type Error struct {
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`
}

func (e *Error) Error() string {

	var prefix string

	if e.Location != nil {
		prefix = e.Location.String() + ": "
	}

	return fmt.Sprintf("%v%v: %v", prefix, e.Code, e.Message)
}

// NewError returns a new Error object.
func NewError(code string, loc *Location, f string, a ...any) *Error {
	return &Error{
		Code:     code,
		Location: loc,
		Message:  fmt.Sprintf(f, a...),
	}
}
