// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics records timings and counts for a program run.
package metrics

import (
	"encoding/json"
	"sync"
	"time"

	go_metrics "github.com/rcrowley/go-metrics"
)

// Names of the metrics recorded while loading and running a program.
const (
	LoadSource    = "tiny_load_source"
	ScanSource    = "tiny_scan"
	ParseStmt     = "tiny_parse"
	EvalStmt      = "tiny_eval"
	EvalStmtNanos = "tiny_eval_stmt_ns"
	Statements    = "tiny_statements"
	Prints        = "tiny_prints"
	Assignments   = "tiny_assignments"
)

// Metrics is a named collection of timers, histograms and counters. Asking
// for a name that does not exist yet creates it.
type Metrics interface {
	Timer(name string) Timer
	Histogram(name string) Histogram
	Counter(name string) Counter

	// All returns every metric keyed as timer_<name>_ns, histogram_<name>
	// or counter_<name>.
	All() map[string]any
	Clear()
	json.Marshaler
}

// Timer accumulates elapsed time over one or more Start/Stop intervals.
type Timer interface {
	Value() any
	Int64() int64
	Start()

	// Stop returns the nanoseconds since the matching Start and adds them
	// to the total. Stop without Start returns zero.
	Stop() int64
}

// Histogram summarizes a stream of int64 samples.
type Histogram interface {
	Value() any
	Update(int64)
}

// Counter is a monotonically increasing count.
type Counter interface {
	Value() any
	Incr()
	Add(n uint64)
}

// reservoir size and alpha of the exponentially decaying sample.
const (
	sampleSize  = 1028
	sampleAlpha = 0.015
)

type registry struct {
	mtx     sync.Mutex
	entries map[string]valuer
}

type valuer interface {
	Value() any
}

// New returns an empty Metrics collection safe for concurrent use.
func New() Metrics {
	return &registry{entries: map[string]valuer{}}
}

func (r *registry) Timer(name string) Timer {
	return lookup(r, "timer_"+name+"_ns", func() Timer { return &timer{} })
}

func (r *registry) Histogram(name string) Histogram {
	return lookup(r, "histogram_"+name, func() Histogram {
		return &histogram{go_metrics.NewHistogram(go_metrics.NewExpDecaySample(sampleSize, sampleAlpha))}
	})
}

func (r *registry) Counter(name string) Counter {
	return lookup(r, "counter_"+name, func() Counter { return &counter{go_metrics.NewCounter()} })
}

// lookup returns the entry stored under key, creating it with create when
// missing.
func lookup[T valuer](r *registry, key string, create func() T) T {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if v, ok := r.entries[key].(T); ok {
		return v
	}
	v := create()
	r.entries[key] = v
	return v
}

func (r *registry) All() map[string]any {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	result := make(map[string]any, len(r.entries))
	for key, v := range r.entries {
		result[key] = v.Value()
	}
	return result
}

func (r *registry) Clear() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	clear(r.entries)
}

func (r *registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.All())
}

type timer struct {
	mtx     sync.Mutex
	started time.Time
	total   time.Duration
}

func (t *timer) Start() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.started = time.Now()
}

func (t *timer) Stop() int64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.started.IsZero() {
		return 0
	}
	d := time.Since(t.started)
	t.total += d
	t.started = time.Time{}
	return d.Nanoseconds()
}

func (t *timer) Int64() int64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.total.Nanoseconds()
}

func (t *timer) Value() any {
	return t.Int64()
}

type histogram struct {
	h go_metrics.Histogram
}

func (h *histogram) Update(v int64) {
	h.h.Update(v)
}

func (h *histogram) Value() any {
	snap := h.h.Snapshot()
	ps := snap.Percentiles([]float64{0.5, 0.9, 0.99})
	return map[string]any{
		"count":  snap.Count(),
		"min":    snap.Min(),
		"max":    snap.Max(),
		"mean":   snap.Mean(),
		"median": ps[0],
		"90%":    ps[1],
		"99%":    ps[2],
	}
}

type counter struct {
	c go_metrics.Counter
}

func (c *counter) Incr() {
	c.c.Inc(1)
}

func (c *counter) Add(n uint64) {
	c.c.Inc(int64(n))
}

func (c *counter) Value() any {
	return uint64(c.c.Count())
}

// NoOp returns a Metrics that records nothing. All returns nil.
func NoOp() Metrics {
	return noOp{}
}

type noOp struct{}

func (noOp) Timer(string) Timer           { return noOp{} }
func (noOp) Histogram(string) Histogram   { return noOp{} }
func (noOp) Counter(string) Counter       { return noOp{} }
func (noOp) All() map[string]any          { return nil }
func (noOp) Clear()                       {}
func (noOp) MarshalJSON() ([]byte, error) { return []byte(`{}`), nil }
func (noOp) Start()                       {}
func (noOp) Stop() int64                  { return 0 }
func (noOp) Int64() int64                 { return 0 }
func (noOp) Update(int64)                 {}
func (noOp) Incr()                        {}
func (noOp) Add(uint64)                   {}
func (noOp) Value() any                   { return nil }
