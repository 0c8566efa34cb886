// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package storage

import "context"

// Store defines the interface for the variable store used by the evaluator.
// A store maps variable names to integer values. Entries are created by the
// first write to a name and overwritten by later writes; they are never
// removed.
type Store interface {

	// Read returns the value bound to name. If name has never been written
	// the error satisfies IsNotFound.
	Read(ctx context.Context, name string) (int64, error)

	// Write binds value to name, inserting the name if it does not exist.
	Write(ctx context.Context, name string, value int64) error

	// Names returns the names of all bound variables in sorted order.
	Names(ctx context.Context) ([]string, error)
}
