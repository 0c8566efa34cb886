// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"errors"
	"fmt"

	"github.com/open-policy-agent/tiny/ast"
)

// Error is the error type returned by the Eval function when an evaluation
// error occurs.
type Error struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *ast.Location `json:"location,omitempty"`
	err      error
	name     string
}

const (

	// InternalErr represents an unknown evaluation error.
	InternalErr string = "eval_internal_error"

	// UndefinedVarErr indicates a variable was referenced before any
	// assignment to it.
	UndefinedVarErr string = "eval_undefined_error"

	// CancelErr indicates the evaluation was cancelled through its context.
	CancelErr string = "eval_cancel_error"
)

// IsError returns true if the err is an Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// IsCancel returns true if err was caused by cancellation.
func IsCancel(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CancelErr
	}
	return false
}

// UndefinedVar returns the name of the variable if err reports an undefined
// variable.
func UndefinedVar(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) && e.Code == UndefinedVarErr {
		return e.name, true
	}
	return "", false
}

func (e *Error) Error() string {

	msg := fmt.Sprintf("%v: %v", e.Code, e.Message)

	if e.Location != nil {
		msg = e.Location.String() + ": " + msg
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func undefinedVarErr(v *ast.Var) error {
	return &Error{
		Code:     UndefinedVarErr,
		Location: v.Location,
		Message:  "undefined variable: " + v.Name,
		name:     v.Name,
	}
}

func internalErr(loc *ast.Location, err error) error {
	return &Error{
		Code:     InternalErr,
		Location: loc,
		Message:  err.Error(),
		err:      err,
	}
}

func cancelErr(err error) error {
	return &Error{
		Code:    CancelErr,
		Message: "caller cancelled query execution",
		err:     err,
	}
}
