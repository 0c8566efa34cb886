// Copyright 2016 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package storage

import (
	"context"
)

// Dump returns every binding in store as a map.
func Dump(ctx context.Context, store Store) (map[string]int64, error) {
	names, err := store.Names(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(names))
	for _, name := range names {
		v, err := store.Read(ctx, name)
		if err != nil {
			return nil, err
		}
		result[name] = v
	}
	return result, nil
}
