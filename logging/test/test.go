// Copyright 2021 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package test provides a logger that buffers entries for assertions.
package test

import (
	"fmt"
	"maps"
	"sync"

	"github.com/open-policy-agent/tiny/logging"
)

// LogEntry represents a log message.
type LogEntry struct {
	Level   logging.Level
	Fields  map[string]any
	Message string
}

type buffer struct {
	mtx     sync.Mutex
	entries []LogEntry
}

// Logger implementation that buffers messages for test purposes. Loggers
// derived with WithFields share the buffer of their parent.
type Logger struct {
	level  logging.Level
	fields map[string]any
	buf    *buffer
}

// New instantiates new Logger.
func New() *Logger {
	return &Logger{
		level: logging.Info,
		buf:   &buffer{},
	}
}

// WithFields provides additional fields to include in log output.
func (l *Logger) WithFields(fields map[string]any) logging.Logger {
	cp := *l
	cp.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(cp.fields, l.fields)
	maps.Copy(cp.fields, fields)
	return &cp
}

// Debug buffers a log message.
func (l *Logger) Debug(f string, a ...any) {
	l.append(logging.Debug, f, a...)
}

// Info buffers a log message.
func (l *Logger) Info(f string, a ...any) {
	l.append(logging.Info, f, a...)
}

// Error buffers a log message.
func (l *Logger) Error(f string, a ...any) {
	l.append(logging.Error, f, a...)
}

// Warn buffers a log message.
func (l *Logger) Warn(f string, a ...any) {
	l.append(logging.Warn, f, a...)
}

// SetLevel set log level. Entries above the level are still buffered.
func (l *Logger) SetLevel(level logging.Level) {
	l.level = level
}

// GetLevel get log level.
func (l *Logger) GetLevel() logging.Level {
	return l.level
}

// Entries returns buffered log entries.
func (l *Logger) Entries() []LogEntry {
	l.buf.mtx.Lock()
	defer l.buf.mtx.Unlock()
	return append([]LogEntry(nil), l.buf.entries...)
}

// Messages returns the messages of the buffered entries at level.
func (l *Logger) Messages(level logging.Level) []string {
	var result []string
	for _, e := range l.Entries() {
		if e.Level == level {
			result = append(result, e.Message)
		}
	}
	return result
}

func (l *Logger) append(lvl logging.Level, f string, a ...any) {
	l.buf.mtx.Lock()
	defer l.buf.mtx.Unlock()
	l.buf.entries = append(l.buf.entries, LogEntry{
		Level:   lvl,
		Fields:  l.fields,
		Message: fmt.Sprintf(f, a...),
	})
}
