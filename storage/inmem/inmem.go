// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package inmem implements an in-memory version of the variable store.
//
// The store is owned by the goroutine that evaluates a program and is not
// safe for concurrent use.
package inmem

import (
	"context"
	"slices"

	"github.com/open-policy-agent/tiny/storage"
)

// InMemory implements the storage.Store interface.
type InMemory struct {
	data map[string]int64
}

// New returns an empty InMemory store.
func New() *InMemory {
	return &InMemory{
		data: map[string]int64{},
	}
}

// NewFromObject returns a new InMemory store from the supplied bindings.
func NewFromObject(data map[string]int64) *InMemory {
	db := New()
	for k, v := range data {
		db.data[k] = v
	}
	return db
}

func (db *InMemory) Read(_ context.Context, name string) (int64, error) {
	v, ok := db.data[name]
	if !ok {
		return 0, storage.NewNotFoundError(name)
	}
	return v, nil
}

func (db *InMemory) Write(_ context.Context, name string, value int64) error {
	db.data[name] = value
	return nil
}

func (db *InMemory) Names(context.Context) ([]string, error) {
	names := make([]string, 0, len(db.data))
	for k := range db.data {
		names = append(names, k)
	}
	slices.Sort(names)
	return names, nil
}

// Len returns the number of bound variables.
func (db *InMemory) Len() int {
	return len(db.data)
}
