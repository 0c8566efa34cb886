// Copyright 2023 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package pathwatcher

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/open-policy-agent/tiny/util/test"
)

func TestWatchPaths(t *testing.T) {
	fs := map[string]string{
		"/foo/bar/a.tiny": "x = 1",
		"/foo/bar/b.tiny": "x = 2",
		"/foo/c.tiny":     "x = 3",
	}

	test.WithTempFS(fs, func(rootDir string) {
		paths := []string{
			filepath.Join(rootDir, "foo", "bar", "a.tiny"),
			filepath.Join(rootDir, "foo", "bar", "b.tiny"),
			filepath.Join(rootDir, "foo", "c.tiny"),
		}

		expected := []string{
			loaderClean(filepath.Join(rootDir, "foo")),
			loaderClean(filepath.Join(rootDir, "foo", "bar")),
		}

		result := WatchPaths(paths)
		if !slices.Equal(expected, result) {
			t.Fatalf("Expected %q but got: %q", expected, result)
		}

		watcher, err := CreatePathWatcher(paths)
		if err != nil {
			t.Fatal(err)
		}
		defer watcher.Close()

		if got := watcher.WatchList(); len(got) != 2 {
			t.Fatalf("Expected 2 watched directories but got %v", got)
		}
	})
}

func TestMatches(t *testing.T) {
	test.WithTempFS(map[string]string{"/a.tiny": ""}, func(rootDir string) {
		path := filepath.Join(rootDir, "a.tiny")
		roots := []string{path}

		if got, ok := Matches(roots, filepath.Join(rootDir, ".", "a.tiny")); !ok || got != path {
			t.Fatalf("Expected match for %v but got %v", path, got)
		}

		if _, ok := Matches(roots, filepath.Join(rootDir, "b.tiny")); ok {
			t.Fatal("Did not expect match")
		}
	})
}

func loaderClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return filepath.Clean(abs)
}
