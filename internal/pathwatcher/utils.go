// Copyright 2023 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package pathwatcher provides helper functions for creating file watchers
package pathwatcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/open-policy-agent/tiny/loader"
)

// CreatePathWatcher creates a watcher on the directories containing the
// given files. Editors often replace a file rather than write it in place,
// which only the parent directory observes.
func CreatePathWatcher(rootPaths []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, path := range WatchPaths(rootPaths) {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return watcher, nil
}

// WatchPaths returns the directories to watch for the given files.
func WatchPaths(rootPaths []string) []string {
	abs := make([]string, 0, len(rootPaths))
	for _, path := range rootPaths {
		abs = append(abs, absPath(path))
	}
	return loader.Dirs(abs)
}

// Matches returns the entry of rootPaths that names the same file as name,
// if any.
func Matches(rootPaths []string, name string) (string, bool) {
	target := absPath(name)
	for _, path := range rootPaths {
		if absPath(path) == target {
			return path, true
		}
	}
	return "", false
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return loader.CleanPath(abs)
	}
	return loader.CleanPath(path)
}
