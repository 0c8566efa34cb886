// Copyright 2023 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package filewatcher re-runs tiny programs when their source files change.
package filewatcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/open-policy-agent/tiny/internal/pathwatcher"
	"github.com/open-policy-agent/tiny/loader"
	"github.com/open-policy-agent/tiny/logging"
)

// RunFunc runs a freshly loaded source file.
type RunFunc func(context.Context, *loader.SourceFile) error

// OnReload is called after every re-run with the time the reload took and
// the error, if any, from loading or running the file.
type OnReload func(ctx context.Context, elapsed time.Duration, err error)

// FileWatcher watches source files and re-runs them on change.
type FileWatcher struct {
	paths    []string
	maxBytes int64
	run      RunFunc
	onReload OnReload
	logger   logging.Logger
}

// New returns a FileWatcher for paths. Changed files are loaded with a limit
// of maxBytes and handed to run; onReload receives the outcome.
func New(paths []string, maxBytes int64, run RunFunc, onReload OnReload, logger logging.Logger) *FileWatcher {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &FileWatcher{
		paths:    paths,
		maxBytes: maxBytes,
		run:      run,
		onReload: onReload,
		logger:   logger,
	}
}

// Start begins watching in a background goroutine. The watcher stops when
// ctx is cancelled. Runs happen one at a time in event order.
func (w *FileWatcher) Start(ctx context.Context) error {
	watcher, err := pathwatcher.CreatePathWatcher(w.paths)
	if err != nil {
		return err
	}
	for _, path := range watcher.WatchList() {
		w.logger.WithFields(map[string]any{"path": path}).Debug("watching path")
	}
	go w.readWatcher(ctx, watcher)
	return nil
}

func (w *FileWatcher) readWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	removalMask := fsnotify.Remove | fsnotify.Rename
	mask := fsnotify.Create | fsnotify.Write | removalMask

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error: %v", err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if (evt.Op & mask) == 0 {
				continue
			}
			path, watched := pathwatcher.Matches(w.paths, evt.Name)
			if !watched {
				continue
			}
			w.logger.WithFields(map[string]any{
				"event": evt.String(),
			}).Debug("Registered file event.")
			w.processWatcherUpdate(ctx, path)
		}
	}
}

func (w *FileWatcher) processWatcherUpdate(ctx context.Context, path string) {
	t0 := time.Now()

	src, err := loader.File(path, w.maxBytes)
	if err == nil {
		err = w.run(ctx, src)
	}

	w.onReload(ctx, time.Since(t0), err)
}
