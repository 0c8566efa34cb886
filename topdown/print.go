// Copyright 2021 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package topdown

import (
	"fmt"
	"io"

	"github.com/open-policy-agent/tiny/topdown/print"
)

// NewPrintHook returns a hook that writes each printed value to w followed by
// a newline.
func NewPrintHook(w io.Writer) print.Hook {
	return &printHook{w: w}
}

type printHook struct {
	w io.Writer
}

func (h *printHook) Print(_ print.Context, msg string) error {
	_, err := fmt.Fprintln(h.w, msg)
	return err
}
