// Copyright 2017 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package metrics

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMetricsTimer(t *testing.T) {
	m := New()
	m.Timer("foo").Start()
	time.Sleep(time.Millisecond)
	m.Timer("foo").Stop()
	if m.All()["timer_foo_ns"] == int64(0) {
		t.Fatalf("Expected foo timer to be non-zero: %v", m.All())
	}
	m.Clear()

	if len(m.All()) > 0 {
		t.Fatalf("Expected metrics to be cleared, but found %v", m.All())
	}
}

func TestMetricsTimerDoubleStop(t *testing.T) {
	m := New()
	m.Timer("foo").Start()

	time.Sleep(time.Millisecond)
	m.Timer("foo").Stop()
	t1 := m.Timer("foo").Int64()

	time.Sleep(time.Millisecond)
	m.Timer("foo").Stop()
	t2 := m.Timer("foo").Int64()

	if t1 != t2 {
		t.Fatalf("Unexpected difference in stopped timer values: %v, %v", t1, t2)
	}
}

func TestMetricsCounter(t *testing.T) {
	m := New()
	m.Counter(Statements).Incr()
	m.Counter(Statements).Add(2)

	if v := m.All()["counter_tiny_statements"]; v != uint64(3) {
		t.Fatalf("Expected counter to be 3 but got %v", v)
	}
}

func TestMetricsHistogram(t *testing.T) {
	m := New()
	for _, v := range []int64{1, 2, 3, 4} {
		m.Histogram(EvalStmtNanos).Update(v)
	}

	values, ok := m.All()["histogram_tiny_eval_stmt_ns"].(map[string]any)
	if !ok {
		t.Fatalf("Expected histogram values but got %v", m.All())
	}
	if values["count"] != int64(4) || values["min"] != int64(1) || values["max"] != int64(4) {
		t.Fatalf("Unexpected histogram values: %v", values)
	}
}

func TestMetricsMarshalJSON(t *testing.T) {
	m := New()
	m.Counter(Prints).Incr()

	bs, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	if string(bs) != `{"counter_tiny_prints":1}` {
		t.Fatalf("Unexpected JSON: %s", bs)
	}
}

func TestNoOp(t *testing.T) {
	m := NoOp()
	m.Timer("foo").Start()
	m.Counter("bar").Incr()
	if m.All() != nil {
		t.Fatalf("Expected no metrics but got %v", m.All())
	}
}
