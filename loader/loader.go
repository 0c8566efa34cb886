// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package loader contains utilities for loading tiny source files.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxBytes is the largest source file accepted unless the caller
// configures another limit.
const DefaultMaxBytes int64 = 1 << 20

// IOErr indicates a source file could not be read.
const IOErr = "io_error"

// SourceFile holds the complete contents of a source file.
type SourceFile struct {
	Name string
	Raw  []byte
}

// Error is the error type returned when a source file cannot be loaded.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	err     error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Code, e.Message)
	}
	return fmt.Sprintf("%v: %v: %v", e.Path, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsError returns true if err is a loader Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

func ioErr(path string, err error) error {
	msg := err.Error()
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		msg = pathErr.Op + ": " + pathErr.Err.Error()
	}
	return &Error{Code: IOErr, Path: path, Message: msg, err: err}
}

// File reads the file at path fully into memory. Files larger than maxBytes
// are rejected. If maxBytes is not positive DefaultMaxBytes applies. The file
// is closed before File returns.
func File(path string, maxBytes int64) (*SourceFile, error) {

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, ioErr(path, err)
	}

	if info.IsDir() {
		return nil, &Error{Code: IOErr, Path: path, Message: "is a directory"}
	}

	bs, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, ioErr(path, err)
	}

	if int64(len(bs)) > maxBytes {
		return nil, &Error{
			Code:    IOErr,
			Path:    path,
			Message: fmt.Sprintf("file exceeds maximum size of %d bytes", maxBytes),
		}
	}

	return &SourceFile{Name: path, Raw: bs}, nil
}

// Reader reads a source from r under the same limit as File. The name is used
// for error locations only.
func Reader(name string, r io.Reader, maxBytes int64) (*SourceFile, error) {

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	bs, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, ioErr(name, err)
	}

	if int64(len(bs)) > maxBytes {
		return nil, &Error{
			Code:    IOErr,
			Path:    name,
			Message: fmt.Sprintf("input exceeds maximum size of %d bytes", maxBytes),
		}
	}

	return &SourceFile{Name: name, Raw: bs}, nil
}

// CleanPath returns the normalized version of a path that can be used as an
// identifier.
func CleanPath(path string) string {
	return strings.TrimSuffix(filepath.Clean(path), string(filepath.Separator))
}

// Dirs resolves filepaths to directories. It will return a list of unique
// directories.
func Dirs(paths []string) []string {
	unique := map[string]struct{}{}

	for _, path := range paths {
		dir := filepath.Dir(path)
		unique[dir] = struct{}{}
	}

	u := make([]string, 0, len(unique))
	for k := range unique {
		u = append(u, k)
	}
	slices.Sort(u)
	return u
}
