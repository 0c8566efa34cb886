// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"errors"
	"fmt"
)

// Location records a position in source code
type Location struct {
	Text   []byte `json:"-"`              // The original text fragment from the source.
	File   string `json:"file,omitempty"` // The name of the source file (which may be empty).
	Row    int    `json:"row"`            // The line in the source.
	Col    int    `json:"col"`            // The column in the row.
	Offset int    `json:"-"`              // The byte offset for the location in the source.
}

// NewLocation returns a new Location object.
func NewLocation(text []byte, file string, row int, col int) *Location {
	return &Location{Text: text, File: file, Row: row, Col: col}
}

// Errorf returns a new error value with a message formatted to include the location
// info (e.g., line, column, filename, etc.)
func (loc *Location) Errorf(f string, a ...any) error {
	return errors.New(loc.Format(f, a...))
}

// Format returns a formatted string prefixed with the location information.
func (loc *Location) Format(f string, a ...any) string {
	return loc.String() + ": " + fmt.Sprintf(f, a...)
}

func (loc *Location) String() string {
	if loc == nil {
		return ""
	}
	if len(loc.File) > 0 {
		return fmt.Sprintf("%v:%v:%v", loc.File, loc.Row, loc.Col)
	}
	return fmt.Sprintf("%v:%v", loc.Row, loc.Col)
}

// Equal checks if two locations are equal to each other. Text is ignored.
func (loc *Location) Equal(other *Location) bool {
	if loc == nil || other == nil {
		return loc == other
	}
	return loc.File == other.File &&
		loc.Row == other.Row &&
		loc.Col == other.Col &&
		loc.Offset == other.Offset
}
