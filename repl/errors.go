// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package repl

import (
	"errors"
	"fmt"
)

// BadArgsErr is the code of errors returned when a REPL command is given
// arguments it does not accept.
const BadArgsErr = "bad arguments"

// Error is returned by REPL commands that fail before any source is run.
type Error struct {
	Code    string
	Message string
}

func (err *Error) Error() string {
	return err.Code + ": " + err.Message
}

func badArgs(usage string, f string, a ...any) error {
	return &Error{Code: BadArgsErr, Message: usage + ": " + fmt.Sprintf(f, a...)}
}

// errStop is returned by the exit command and ends the loop.
var errStop = errors.New("exit")
