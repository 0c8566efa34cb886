// Copyright 2025 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package levenshtein finds near matches for misspelled names.
package levenshtein

import (
	"iter"
	"slices"

	"github.com/agnivade/levenshtein"
)

// ClosestStrings returns the candidates with the smallest edit distance to a,
// considering only distances below maxDistance. Ties are all returned in
// sorted order.
func ClosestStrings(maxDistance int, a string, candidates iter.Seq[string]) []string {
	closest := []string{}
	for c := range candidates {
		d := levenshtein.ComputeDistance(a, c)
		switch {
		case d < maxDistance:
			closest = []string{c}
			maxDistance = d
		case d == maxDistance && len(closest) > 0:
			closest = append(closest, c)
		}
	}
	slices.Sort(closest)
	return closest
}
