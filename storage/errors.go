// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package storage

import (
	"errors"
	"fmt"
)

// ErrCode represents the collection of errors that may be returned by the
// storage layer.
type ErrCode int

const (
	// InternalErr indicates an unknown, internal error has occurred.
	InternalErr ErrCode = iota

	// NotFoundErr indicates the name used in the storage operation is not
	// bound to a value.
	NotFoundErr = iota
)

// Error is the error type returned by the storage layer.
type Error struct {
	Code    ErrCode
	Message string
}

func (err *Error) Error() string {
	return fmt.Sprintf("storage error (code: %d): %v", err.Code, err.Message)
}

// IsNotFound returns true if this error is a NotFoundErr.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == NotFoundErr
	}
	return false
}

// NewNotFoundError returns a new NotFoundErr for name.
func NewNotFoundError(name string) *Error {
	return &Error{
		Code:    NotFoundErr,
		Message: fmt.Sprintf("%v: %v", name, doesNotExistMsg),
	}
}

var doesNotExistMsg = "variable does not exist"
